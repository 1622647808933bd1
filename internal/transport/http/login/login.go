package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// loginRequest represents a login request.
type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the login request.
func (r *loginRequest) Validate() error {
	return validator.New().Struct(r)
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles the admin login request.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid json body")
		slog.Error("Error decoding request body for login", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.BadRequest(w, err.Error())
		slog.Error("Error validating request body for login", "error", err)

		return
	}

	token, err := service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, err)
		slog.Warn("Failed login attempt", "email", req.Email)

		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{Token: token})
}
