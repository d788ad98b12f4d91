package handlers

import (
	"net/http"

	"github.com/netpulse/netpulse/internal/api/dto"
	"github.com/netpulse/netpulse/internal/api/middleware"
	"github.com/netpulse/netpulse/internal/domain/user"
	"github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
	"github.com/netpulse/netpulse/internal/pkg/validator"
	"github.com/netpulse/netpulse/internal/services"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service   *services.AuthService
	users     user.Repository
	logger    *logger.Logger
	validator *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *services.AuthService, users user.Repository, log *logger.Logger, val *validator.Validator) *AuthHandler {
	return &AuthHandler{service: service, users: users, logger: log, validator: val}
}

// Login authenticates a user and returns a token
// @Summary Log in
// @Description Authenticate with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} utils.SuccessResponse{data=dto.AuthResponse} "Token and user"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	token, u, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, "Login failed")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.AuthResponse{
		AccessToken: token,
		User:        userDTO(u),
	})
}

// Register creates a new user account
// @Summary Register
// @Description Create a user account (admin only)
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "New user"
// @Success 201 {object} utils.SuccessResponse{data=dto.UserDTO} "Created user"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Security BearerAuth
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	u, err := h.service.Register(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeServiceError(w, err, "Registration failed")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, userDTO(u))
}

// Me returns the authenticated user
// @Summary Current user
// @Description Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.UserDTO} "User profile"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load user")
		return
	}
	if u == nil {
		utils.WriteError(w, errors.NotFound("User"))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, userDTO(u))
}

func userDTO(u *user.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
