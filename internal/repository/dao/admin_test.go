package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDAO_Insert(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	adminDAO := NewAdminDAO(db)

	created, err := adminDAO.Insert(ctx, Admin{Username: "admin", Password: "hash"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = adminDAO.Insert(ctx, Admin{Username: "admin", Password: "other"})
	assert.ErrorIs(t, err, ErrAdminUsernameExists)
}

func TestAdminDAO_FindByUsername(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	adminDAO := NewAdminDAO(db)

	_, err := adminDAO.Insert(ctx, Admin{Username: "admin", Password: "hash"})
	require.NoError(t, err)

	found, err := adminDAO.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash", found.Password)

	_, err = adminDAO.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
