package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lummy-consults/lummy-api/internal/dto"
	"github.com/lummy-consults/lummy-api/internal/models"
	"github.com/lummy-consults/lummy-api/pkg/response"
)

type authService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.UserInfo, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error)
	Me(ctx context.Context, identity *models.Identity) (*models.UserInfo, error)
}

// AuthHandler wires HTTP endpoints to the identity provider.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register godoc
// @Summary Register a local account
// @Description role=admin is rejected with 403 unless AUTH_ALLOW_ADMIN_REGISTRATION is enabled.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} errors.Error
// @Failure 403 {object} errors.Error
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.UserResponse{Message: "User registered", User: *user})
}

// Signup godoc
// @Summary Sign up with email and password
// @Description Creates a user-role account; the name defaults to the email's local part.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.SignupRequest true "Signup payload"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} errors.Error
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.UserResponse{Message: "Signup successful", User: *user})
}

// Login godoc
// @Summary Authenticate user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} errors.Error
// @Failure 401 {object} errors.Error
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Token:   res.Token,
		Session: res.Session(),
		User:    res.User,
	})
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.UserInfo
// @Failure 401 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	user, err := h.service.Me(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user)
}

// Protected godoc
// @Summary Echo the verified identity
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ProtectedResponse
// @Failure 401 {object} errors.Error
// @Router /protected [get]
func (h *AuthHandler) Protected(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, dto.ProtectedResponse{Message: "You accessed a protected route", User: identity})
}
