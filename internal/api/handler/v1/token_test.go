package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/response"
	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/service"
)

type stubTokenService struct {
	batch      domain.TokenBatch
	tokens     []domain.Token
	setUsedErr error

	generatedCount int
	generatedType  string
	setUsedID      uint
	setUsedValue   bool
}

func (s *stubTokenService) GenerateBatch(_ context.Context, count int, tokenType string) (domain.TokenBatch, error) {
	s.generatedCount = count
	s.generatedType = tokenType

	return s.batch, nil
}

func (s *stubTokenService) ListTokens(_ context.Context) ([]domain.Token, error) {
	return s.tokens, nil
}

func (s *stubTokenService) SetUsed(_ context.Context, id uint, used bool) (domain.Token, error) {
	s.setUsedID = id
	s.setUsedValue = used
	if s.setUsedErr != nil {
		return domain.Token{}, s.setUsedErr
	}

	return domain.Token{ID: id, Used: used}, nil
}

func (s *stubTokenService) DeleteToken(_ context.Context, _ uint) error {
	return nil
}

func (s *stubTokenService) DeleteAllTokens(_ context.Context) error {
	return nil
}

func (s *stubTokenService) ExportCSV(_ context.Context, tokenType string) ([]byte, string, error) {
	return []byte("Token\nABC1!\n"), tokenType + "_tokens.csv", nil
}

func newTokenRouter(svc TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewTokenHandler(svc)
	router.POST("/admin/tokens/generate", handler.HandleGenerateTokens)
	router.GET("/admin/tokens", handler.HandleListTokens)
	router.GET("/admin/tokens/export", handler.HandleExportTokens)
	router.PATCH("/admin/tokens/:tokenID", handler.HandleUpdateToken)
	router.DELETE("/admin/tokens/:tokenID", handler.HandleDeleteToken)

	return router
}

func TestHandleGenerateTokens(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubTokenService{batch: domain.TokenBatch{
			Type:   domain.TokenTypeStudent,
			Tokens: []string{"ABC1!", "XYZ9#"},
		}}
		router := newTokenRouter(svc)

		recorder := performJSON(t, router, http.MethodPost, "/admin/tokens/generate", `{"count":2,"type":"student"}`)

		require.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, 2, svc.generatedCount)
		assert.Equal(t, "student", svc.generatedType)

		var resp response.GenerateTokensResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Generated)
		assert.Equal(t, []string{"ABC1!", "XYZ9#"}, resp.Tokens)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		router := newTokenRouter(&stubTokenService{})

		recorder := performJSON(t, router, http.MethodPost, "/admin/tokens/generate", `{"count":2,"type":"alien"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects a zero count", func(t *testing.T) {
		router := newTokenRouter(&stubTokenService{})

		recorder := performJSON(t, router, http.MethodPost, "/admin/tokens/generate", `{"count":0,"type":"student"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandleUpdateToken(t *testing.T) {
	t.Run("toggles used off", func(t *testing.T) {
		svc := &stubTokenService{}
		router := newTokenRouter(svc)

		recorder := performJSON(t, router, http.MethodPatch, "/admin/tokens/7", `{"used":false}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, uint(7), svc.setUsedID)
		assert.False(t, svc.setUsedValue)
	})

	t.Run("missing used field", func(t *testing.T) {
		router := newTokenRouter(&stubTokenService{})

		recorder := performJSON(t, router, http.MethodPatch, "/admin/tokens/7", `{}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("conflict when already used", func(t *testing.T) {
		svc := &stubTokenService{setUsedErr: service.ErrTokenAlreadyUsed}
		router := newTokenRouter(svc)

		recorder := performJSON(t, router, http.MethodPatch, "/admin/tokens/7", `{"used":true}`)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		router := newTokenRouter(&stubTokenService{})

		recorder := performJSON(t, router, http.MethodPatch, "/admin/tokens/zero", `{"used":true}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandleExportTokens(t *testing.T) {
	t.Run("download headers", func(t *testing.T) {
		router := newTokenRouter(&stubTokenService{})

		recorder := performJSON(t, router, http.MethodGet, "/admin/tokens/export?type=student", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "text/csv", recorder.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="student_tokens.csv"`, recorder.Header().Get("Content-Disposition"))
		assert.Equal(t, "Token\nABC1!\n", recorder.Body.String())
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		router := newTokenRouter(&stubTokenService{})

		recorder := performJSON(t, router, http.MethodGet, "/admin/tokens/export?type=alien", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
