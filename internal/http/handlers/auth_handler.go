package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusbook/appointments/internal/domain"
	"github.com/campusbook/appointments/internal/http/response"
	"github.com/campusbook/appointments/pkg/logger"
)

// Register handles user registration
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			response.Conflict(w, "User already exists")
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User registered",
		"userId":  user.ID,
	})
}

// Login handles user authentication
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid credentials")
			return
		}
		logger.ErrorContext(r.Context(), "login failed", "error", err)
		response.InternalError(w, "Failed to log in")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}
