package v1

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/request"
	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/response"
	"github.com/sekolahvote/pemira-api/internal/domain"
)

type SchoolService interface {
	GetInfo(ctx context.Context) (domain.SchoolInfo, error)
	UpdateName(ctx context.Context, name string) (domain.SchoolInfo, error)
	UploadLogo(ctx context.Context, filename, contentType string, r io.Reader) (domain.SchoolInfo, error)
}

type SchoolHandler struct {
	svc SchoolService
}

func NewSchoolHandler(svc SchoolService) *SchoolHandler {
	return &SchoolHandler{
		svc: svc,
	}
}

// HandleGetSchoolInfo godoc
// @Summary      Get the school name and logo
// @Tags         school
// @Produce      json
// @Success      200      {object}   domain.SchoolInfo
// @Failure      500      {object}   response.Err
// @Router       /school [get]
func (h *SchoolHandler) HandleGetSchoolInfo(ctx *gin.Context) {
	info, err := h.svc.GetInfo(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSchoolInfo -> h.svc.GetInfo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, info)
}

// HandleUpdateSchoolInfo godoc
// @Summary      Update the school name
// @Tags         school
// @Produce      json
// @Param        request   body      request.UpdateSchoolInfoRequest true "request body"
// @Success      200      {object}   domain.SchoolInfo
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/school [put]
func (h *SchoolHandler) HandleUpdateSchoolInfo(ctx *gin.Context) {
	req := request.UpdateSchoolInfoRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	info, err := h.svc.UpdateName(ctx.Request.Context(), req.Name)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateSchoolInfo -> h.svc.UpdateName -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, info)
}

// HandleUploadSchoolLogo godoc
// @Summary      Upload the school logo
// @Tags         school
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo     formData   file true "logo file"
// @Success      200      {object}   domain.SchoolInfo
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/school/logo [put]
func (h *SchoolHandler) HandleUploadSchoolLogo(ctx *gin.Context) {
	header, err := ctx.FormFile("logo")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	file, err := header.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadSchoolLogo -> header.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}
	defer file.Close()

	info, err := h.svc.UploadLogo(ctx.Request.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadSchoolLogo -> h.svc.UploadLogo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, info)
}
