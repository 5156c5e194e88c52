package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/request"
	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/response"
	"github.com/sekolahvote/pemira-api/internal/config"
	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/service"
)

type BallotService interface {
	Validate(ctx context.Context, tokenString string) (domain.VoteSession, error)
	ConfirmVote(ctx context.Context, session domain.VoteSession, candidateID uint) error
	Tally(ctx context.Context) (domain.Tally, error)
}

type BallotHandler struct {
	conf *config.BallotConfig
	svc  BallotService
}

func NewBallotHandler(conf *config.BallotConfig, svc BallotService) *BallotHandler {
	return &BallotHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleValidateToken godoc
// @Summary      Validate a voting token
// @Description  Checks a presented token string and opens a vote session when it is valid and unspent.
// @Tags         ballot
// @Produce      json
// @Param        request   body      request.ValidateTokenRequest true "request body"
// @Success      200      {object}   response.ValidateTokenResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /ballot/validate [post]
func (h *BallotHandler) HandleValidateToken(ctx *gin.Context) {
	req := request.ValidateTokenRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.Validate(ctx.Request.Context(), req.Token)
	if err != nil {
		// Rejections are outcomes the voting page displays inline,
		// not transport errors.
		if errors.Is(err, service.ErrTokenNotFound) {
			ctx.JSON(http.StatusOK, response.ValidateTokenResponse{
				Status:  domain.BallotStatusInvalid,
				Message: response.MsgTokenInvalid,
			})

			return
		}
		if errors.Is(err, service.ErrTokenAlreadyUsed) {
			ctx.JSON(http.StatusOK, response.ValidateTokenResponse{
				Status:  domain.BallotStatusAlreadyUsed,
				Message: response.MsgTokenAlreadyUsed,
			})

			return
		}

		err = fmt.Errorf("v1.HandleValidateToken -> h.svc.Validate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ValidateTokenResponse{
		Status:  domain.BallotStatusValid,
		Message: response.MsgTokenValid,
		Session: &session,
	})
}

// HandleConfirmVote godoc
// @Summary      Confirm a vote
// @Description  Spends the session's token on the chosen candidate. Each token counts at most once.
// @Tags         ballot
// @Produce      json
// @Param        request   body      request.ConfirmVoteRequest true "request body"
// @Success      200      {object}   response.ConfirmVoteResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /ballot/confirm [post]
func (h *BallotHandler) HandleConfirmVote(ctx *gin.Context) {
	req := request.ConfirmVoteRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session := domain.VoteSession{
		TokenID:    req.TokenID,
		Generation: req.Generation,
	}

	err := h.svc.ConfirmVote(ctx.Request.Context(), session, req.CandidateID)
	if err != nil {
		if errors.Is(err, service.ErrStaleSession) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrStaleSession))

			return
		}
		if errors.Is(err, service.ErrTokenAlreadyUsed) {
			response.RenderErr(ctx, response.ErrConflict(errors.New(response.MsgTokenAlreadyUsed)))

			return
		}
		if errors.Is(err, service.ErrTokenNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("token", "id", req.TokenID))

			return
		}
		if errors.Is(err, service.ErrCandidateNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("candidate", "id", req.CandidateID))

			return
		}

		err = fmt.Errorf("v1.HandleConfirmVote -> h.svc.ConfirmVote -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ConfirmVoteResponse{
		Message:         response.MsgThankYou,
		RedirectSeconds: h.conf.RedirectSeconds,
	})
}

// HandleGetResults godoc
// @Summary      Get the current tally
// @Tags         ballot
// @Produce      json
// @Success      200      {object}   domain.Tally
// @Failure      500      {object}   response.Err
// @Router       /results [get]
func (h *BallotHandler) HandleGetResults(ctx *gin.Context) {
	tally, err := h.svc.Tally(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetResults -> h.svc.Tally -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tally)
}
