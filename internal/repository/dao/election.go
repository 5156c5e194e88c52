package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Election is a singleton row; electionID is its fixed primary key.
const electionID = 1

type Election struct {
	ID         uint   `gorm:"primaryKey"`
	Generation string `gorm:"not null"`
	UpdatedAt  time.Time
}

type ElectionDAO struct {
	db *gorm.DB
}

func NewElectionDAO(db *gorm.DB) *ElectionDAO {
	return &ElectionDAO{
		db: db,
	}
}

// Get returns the election row, creating it with a fresh generation on first
// access.
func (d *ElectionDAO) Get(ctx context.Context) (Election, error) {
	var election Election

	err := d.db.WithContext(ctx).First(&election, electionID).Error
	if err == nil {
		return election, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Election{}, err
	}

	election = Election{
		ID:         electionID,
		Generation: uuid.NewString(),
	}
	if err = d.db.WithContext(ctx).Create(&election).Error; err != nil {
		return Election{}, err
	}

	return election, nil
}

// bumpGeneration is called inside the bulk-operation transactions so that
// the generation moves atomically with the reset it belongs to.
func bumpGeneration(tx *gorm.DB, newGeneration string) error {
	result := tx.Model(&Election{}).Where("id = ?", electionID).Update("generation", newGeneration)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tx.Create(&Election{ID: electionID, Generation: newGeneration}).Error
	}

	return nil
}
