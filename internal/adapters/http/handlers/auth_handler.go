package handlers

import (
	"fmt"
	"net/http"

	"taskmanager-api/internal/adapters/http/dto"
	"taskmanager-api/internal/domain"
	"taskmanager-api/internal/ports"
)

// AuthHandler handles the public sign-in and sign-up endpoints.
type AuthHandler struct {
	svc ports.UserService
}

// NewAuthHandler creates a new AuthHandler with the given service port.
func NewAuthHandler(svc ports.UserService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// SignIn handles POST /api/v1/auth/signin. Bad credentials and unknown
// usernames both produce the same 401 so the endpoint does not reveal which
// usernames exist.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.svc.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	if token == "" {
		dto.WriteErrorResponse(w, r,
			fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized))
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// SignUp handles POST /api/v1/auth/signup. A taken username yields 409.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.SignUp(r.Context(), req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	if created == nil {
		dto.WriteErrorResponse(w, r,
			fmt.Errorf("username %q is already taken: %w", req.Username, domain.ErrConflict))
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(created))
}
