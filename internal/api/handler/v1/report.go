package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/response"
	"github.com/sekolahvote/pemira-api/internal/domain"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportService interface {
	Ranking(ctx context.Context) ([]domain.RankedCandidate, int, error)
	ExportXLSX(ctx context.Context) ([]byte, string, error)
}

// SchoolInfoGetter is the slice of SchoolService the report needs for its
// header.
type SchoolInfoGetter interface {
	GetInfo(ctx context.Context) (domain.SchoolInfo, error)
}

type ReportHandler struct {
	svc       ReportService
	schoolSvc SchoolInfoGetter
}

func NewReportHandler(svc ReportService, schoolSvc SchoolInfoGetter) *ReportHandler {
	return &ReportHandler{
		svc:       svc,
		schoolSvc: schoolSvc,
	}
}

// HandleGetReport godoc
// @Summary      Get the ranked final report
// @Tags         report
// @Produce      json
// @Success      200      {object}   response.ReportResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/report [get]
func (h *ReportHandler) HandleGetReport(ctx *gin.Context) {
	ranking, total, err := h.svc.Ranking(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetReport -> h.svc.Ranking -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	info, err := h.schoolSvc.GetInfo(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetReport -> h.schoolSvc.GetInfo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ReportResponse{
		SchoolName: info.Name,
		TotalVotes: total,
		Ranking:    ranking,
	})
}

// HandleExportReport godoc
// @Summary      Export the final report as a spreadsheet download
// @Tags         report
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200      {string}   string
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/report/export [get]
func (h *ReportHandler) HandleExportReport(ctx *gin.Context) {
	data, filename, err := h.svc.ExportXLSX(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleExportReport -> h.svc.ExportXLSX -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, contentTypeXLSX, data)
}
