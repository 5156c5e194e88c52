package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/request"
	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/response"
	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/service"
)

type TokenService interface {
	GenerateBatch(ctx context.Context, count int, tokenType string) (domain.TokenBatch, error)
	ListTokens(ctx context.Context) ([]domain.Token, error)
	SetUsed(ctx context.Context, id uint, used bool) (domain.Token, error)
	DeleteToken(ctx context.Context, id uint) error
	DeleteAllTokens(ctx context.Context) error
	ExportCSV(ctx context.Context, tokenType string) ([]byte, string, error)
}

type TokenHandler struct {
	svc TokenService
}

func NewTokenHandler(svc TokenService) *TokenHandler {
	return &TokenHandler{
		svc: svc,
	}
}

// HandleGenerateTokens godoc
// @Summary      Generate a batch of voting tokens
// @Tags         tokens
// @Produce      json
// @Param        request   body      request.GenerateTokensRequest true "request body"
// @Success      201      {object}   response.GenerateTokensResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/tokens/generate [post]
func (h *TokenHandler) HandleGenerateTokens(ctx *gin.Context) {
	req := request.GenerateTokensRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	batch, err := h.svc.GenerateBatch(ctx.Request.Context(), req.Count, req.Type)
	if err != nil {
		err = fmt.Errorf("v1.HandleGenerateTokens -> h.svc.GenerateBatch -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.GenerateTokensResponse{
		Type:      batch.Type,
		Generated: len(batch.Tokens),
		Tokens:    batch.Tokens,
	})
}

// HandleListTokens godoc
// @Summary      List all tokens with their status
// @Tags         tokens
// @Produce      json
// @Success      200      {object}   []domain.Token
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/tokens [get]
func (h *TokenHandler) HandleListTokens(ctx *gin.Context) {
	tokens, err := h.svc.ListTokens(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTokens -> h.svc.ListTokens -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tokens)
}

// HandleUpdateToken godoc
// @Summary      Toggle a token's used status
// @Description  Marking used is an administrative override. Un-marking releases the token and reverses its vote, if any.
// @Tags         tokens
// @Produce      json
// @Param        tokenID   path       int  true "token ID"
// @Param        request   body      request.UpdateTokenRequest true "request body"
// @Success      200      {object}   domain.Token
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/tokens/{tokenID} [patch]
func (h *TokenHandler) HandleUpdateToken(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "tokenID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateTokenRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	token, err := h.svc.SetUsed(ctx.Request.Context(), id, *req.Used)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("token", "id", id))

			return
		}
		if errors.Is(err, service.ErrTokenAlreadyUsed) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrTokenAlreadyUsed))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateToken -> h.svc.SetUsed -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, token)
}

// HandleDeleteToken godoc
// @Summary      Delete a token
// @Tags         tokens
// @Produce      json
// @Param        tokenID   path       int  true "token ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/tokens/{tokenID} [delete]
func (h *TokenHandler) HandleDeleteToken(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "tokenID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteToken(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("token", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteToken -> h.svc.DeleteToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteAllTokens godoc
// @Summary      Delete all tokens
// @Description  Removes every token and starts a new election generation. Open vote sessions become stale.
// @Tags         tokens
// @Produce      json
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/tokens [delete]
func (h *TokenHandler) HandleDeleteAllTokens(ctx *gin.Context) {
	if err := h.svc.DeleteAllTokens(ctx.Request.Context()); err != nil {
		err = fmt.Errorf("v1.HandleDeleteAllTokens -> h.svc.DeleteAllTokens -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleExportTokens godoc
// @Summary      Export tokens as a CSV download
// @Tags         tokens
// @Produce      text/csv
// @Param        type     query      string false "token category (student or teacher)"
// @Success      200      {string}   string
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/tokens/export [get]
func (h *TokenHandler) HandleExportTokens(ctx *gin.Context) {
	tokenType := ctx.Query("type")
	if tokenType != "" && tokenType != domain.TokenTypeStudent && tokenType != domain.TokenTypeTeacher {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid token type %q", tokenType)))

		return
	}

	data, filename, err := h.svc.ExportCSV(ctx.Request.Context(), tokenType)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportTokens -> h.svc.ExportCSV -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv", data)
}
