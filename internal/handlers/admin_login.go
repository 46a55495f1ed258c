package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-cambio/internal/logger"
	"github.com/sbilibin2017/gw-cambio/internal/models"
	"github.com/sbilibin2017/gw-cambio/internal/services"
)

//go:generate mockgen -source=admin_login.go -destination=admin_login_mock.go -package=handlers

// AdminLoginer defines the interface that the admin auth service must implement.
type AdminLoginer interface {
	Login(ctx context.Context, password string) (string, error)
}

// NewAdminLoginHandler returns an HTTP handler for administrator login.
// @Summary Administrator login
// @Description Checks the administrator password and returns a JWT token for rate updates
// @Tags auth
// @Accept json
// @Produce json
// @Param adminLoginRequest body models.AdminLoginRequest true "Login Request"
// @Success 200 {object} models.AdminLoginResponse "JWT token returned"
// @Failure 400 {object} models.AdminLoginErrorResponse "Invalid request body"
// @Failure 401 {object} models.AdminLoginErrorResponse "Invalid password"
// @Failure 500 {object} models.AdminLoginErrorResponse "Admin login disabled or internal error"
// @Router /admin/login [post]
func NewAdminLoginHandler(svc AdminLoginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AdminLoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.AdminLoginErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		token, err := svc.Login(r.Context(), req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeJSON(w, http.StatusUnauthorized, models.AdminLoginErrorResponse{
					Error: "Invalid password",
				})
			case errors.Is(err, services.ErrAdminNotConfigured):
				writeJSON(w, http.StatusInternalServerError, models.AdminLoginErrorResponse{
					Error: err.Error(),
				})
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeJSON(w, http.StatusInternalServerError, models.AdminLoginErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusOK, models.AdminLoginResponse{
			Token: token,
		})
	}
}
