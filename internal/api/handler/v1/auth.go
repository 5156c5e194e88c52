package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/request"
	"github.com/sekolahvote/pemira-api/internal/api/handler/v1/response"
	"github.com/sekolahvote/pemira-api/internal/api/middleware"
	"github.com/sekolahvote/pemira-api/internal/config"
	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/pkg/jwthelper"
	"github.com/sekolahvote/pemira-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.Admin, error)
	CreateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	GetAdmin(ctx context.Context, id uint) (domain.Admin, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
	DeleteAdmin(ctx context.Context, id uint) error
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Login an admin
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	admin, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), admin.ID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		Admin: admin,
	})
}

// HandleCreateAdmin godoc
// @Summary      Create an admin account
// @Tags         auth
// @Produce      json
// @Param        request   body      request.CreateAdminRequest true "request body"
// @Success      201      {object}   domain.Admin
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/admins [post]
func (h *AuthHandler) HandleCreateAdmin(ctx *gin.Context) {
	req := request.CreateAdminRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	admin, err := h.svc.CreateAdmin(ctx.Request.Context(), domain.Admin{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrAdminUsernameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAdminUsernameExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateAdmin -> h.svc.CreateAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, admin)
}

// HandleGetAdmin godoc
// @Summary      Get an admin account
// @Tags         auth
// @Produce      json
// @Param        adminID   path       int  true "admin ID"
// @Success      200      {object}   domain.Admin
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/admins/{adminID} [get]
func (h *AuthHandler) HandleGetAdmin(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "adminID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	admin, err := h.svc.GetAdmin(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("admin", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetAdmin -> h.svc.GetAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, admin)
}

// HandleListAdmins godoc
// @Summary      List admin accounts
// @Tags         auth
// @Produce      json
// @Success      200      {object}   []domain.Admin
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/admins [get]
func (h *AuthHandler) HandleListAdmins(ctx *gin.Context) {
	admins, err := h.svc.ListAdmins(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAdmins -> h.svc.ListAdmins -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, admins)
}

// HandleDeleteAdmin godoc
// @Summary      Delete an admin account
// @Tags         auth
// @Produce      json
// @Param        adminID   path       int  true "admin ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /admin/admins/{adminID} [delete]
func (h *AuthHandler) HandleDeleteAdmin(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "adminID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	// An admin removing their own account would lock the session out
	// mid-flight; refuse it.
	if callerID, ok := ctx.Get(middleware.ContextKeyAdminID); ok && callerID == any(id) {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("cannot delete the account you are logged in as")))

		return
	}

	if err = h.svc.DeleteAdmin(ctx.Request.Context(), id); err != nil {
		err = fmt.Errorf("v1.HandleDeleteAdmin -> h.svc.DeleteAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %v (%q)", name, raw)
	}

	return uint(id), nil
}
