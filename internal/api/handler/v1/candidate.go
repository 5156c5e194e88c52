package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/request"
	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/response"
	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/service"
)

type CandidateService interface {
	CreateCandidate(ctx context.Context, candidate domain.Candidate) (domain.Candidate, error)
	GetCandidate(ctx context.Context, id uint) (domain.Candidate, error)
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
	ListCandidatesShuffled(ctx context.Context) ([]domain.Candidate, error)
	UpdateCandidate(ctx context.Context, id uint, fields map[string]interface{}) (domain.Candidate, error)
	UpdatePhoto(ctx context.Context, id uint, filename, contentType string, r io.Reader) (domain.Candidate, error)
	DeleteCandidate(ctx context.Context, id uint) error
	ResetAllVotes(ctx context.Context) error
	DeleteAllCandidates(ctx context.Context) error
}

type CandidateHandler struct {
	svc CandidateService
}

func NewCandidateHandler(svc CandidateService) *CandidateHandler {
	return &CandidateHandler{
		svc: svc,
	}
}

// HandleListCandidates godoc
// @Summary      List candidates for the voting page
// @Description  Returns all candidates in a randomized order so ballot position favors no one.
// @Tags         candidates
// @Produce      json
// @Success      200      {object}   []domain.Candidate
// @Failure      500      {object}   response.Err
// @Router       /candidates [get]
func (h *CandidateHandler) HandleListCandidates(ctx *gin.Context) {
	candidates, err := h.svc.ListCandidatesShuffled(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListCandidates -> h.svc.ListCandidatesShuffled -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, candidates)
}

// HandleListCandidatesAdmin godoc
// @Summary      List candidates in stored order
// @Tags         candidates
// @Produce      json
// @Success      200      {object}   []domain.Candidate
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/candidates [get]
func (h *CandidateHandler) HandleListCandidatesAdmin(ctx *gin.Context) {
	candidates, err := h.svc.ListCandidates(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListCandidatesAdmin -> h.svc.ListCandidates -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, candidates)
}

// HandleGetCandidate godoc
// @Summary      Get a candidate
// @Tags         candidates
// @Produce      json
// @Param        candidateID   path       int  true "candidate ID"
// @Success      200      {object}   domain.Candidate
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /candidates/{candidateID} [get]
func (h *CandidateHandler) HandleGetCandidate(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "candidateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	candidate, err := h.svc.GetCandidate(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("candidate", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetCandidate -> h.svc.GetCandidate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, candidate)
}

// HandleCreateCandidate godoc
// @Summary      Create a candidate
// @Tags         candidates
// @Produce      json
// @Param        request   body      request.CreateCandidateRequest true "request body"
// @Success      201      {object}   domain.Candidate
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/candidates [post]
func (h *CandidateHandler) HandleCreateCandidate(ctx *gin.Context) {
	req := request.CreateCandidateRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	candidate, err := h.svc.CreateCandidate(ctx.Request.Context(), domain.Candidate{
		Name:    req.Name,
		Kelas:   req.Kelas,
		Vision:  req.Vision,
		Mission: req.Mission,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateCandidate -> h.svc.CreateCandidate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, candidate)
}

// HandleUpdateCandidate godoc
// @Summary      Update a candidate
// @Tags         candidates
// @Produce      json
// @Param        candidateID   path       int  true "candidate ID"
// @Param        request   body      request.UpdateCandidateRequest true "request body"
// @Success      200      {object}   domain.Candidate
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/candidates/{candidateID} [patch]
func (h *CandidateHandler) HandleUpdateCandidate(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "candidateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateCandidateRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	candidate, err := h.svc.UpdateCandidate(ctx.Request.Context(), id, req.Fields())
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("candidate", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateCandidate -> h.svc.UpdateCandidate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, candidate)
}

// HandleUploadCandidatePhoto godoc
// @Summary      Upload a candidate photo
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        candidateID   path       int  true "candidate ID"
// @Param        photo    formData   file true "photo file"
// @Success      200      {object}   domain.Candidate
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/candidates/{candidateID}/photo [put]
func (h *CandidateHandler) HandleUploadCandidatePhoto(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "candidateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	header, err := ctx.FormFile("photo")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	file, err := header.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadCandidatePhoto -> header.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}
	defer file.Close()

	candidate, err := h.svc.UpdatePhoto(ctx.Request.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("candidate", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleUploadCandidatePhoto -> h.svc.UpdatePhoto -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, candidate)
}

// HandleDeleteCandidate godoc
// @Summary      Delete a candidate
// @Tags         candidates
// @Produce      json
// @Param        candidateID   path       int  true "candidate ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/candidates/{candidateID} [delete]
func (h *CandidateHandler) HandleDeleteCandidate(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "candidateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteCandidate(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("candidate", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteCandidate -> h.svc.DeleteCandidate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteAllCandidates godoc
// @Summary      Delete all candidates
// @Description  Removes every candidate and starts a new election generation. Open vote sessions become stale.
// @Tags         candidates
// @Produce      json
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/candidates [delete]
func (h *CandidateHandler) HandleDeleteAllCandidates(ctx *gin.Context) {
	if err := h.svc.DeleteAllCandidates(ctx.Request.Context()); err != nil {
		err = fmt.Errorf("v1.HandleDeleteAllCandidates -> h.svc.DeleteAllCandidates -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleResetVotes godoc
// @Summary      Reset all vote counts to zero
// @Description  Zeroes every candidate's tally and starts a new election generation. Tokens keep their state.
// @Tags         candidates
// @Produce      json
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/votes/reset [post]
func (h *CandidateHandler) HandleResetVotes(ctx *gin.Context) {
	if err := h.svc.ResetAllVotes(ctx.Request.Context()); err != nil {
		err = fmt.Errorf("v1.HandleResetVotes -> h.svc.ResetAllVotes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
