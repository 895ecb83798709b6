package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lummy-consults/lummy-api/internal/dto"
	"github.com/lummy-consults/lummy-api/internal/models"
	"github.com/lummy-consults/lummy-api/pkg/response"
)

type tutorService interface {
	UpsertOwn(ctx context.Context, identity *models.Identity, req models.UpsertTutorProfileRequest) (*models.TutorProfile, error)
	GetOwn(ctx context.Context, identity *models.Identity) (*models.TutorProfile, error)
	ListPublic(ctx context.Context) ([]dto.PublicTutorProfile, error)
	GetPublic(ctx context.Context, id string) (*dto.TutorDetailProfile, error)
	List(ctx context.Context, status string) ([]models.TutorProfile, error)
	SetStatus(ctx context.Context, id string, req models.TutorStatusRequest) (*models.TutorProfile, error)
}

// TutorHandler serves tutor profile endpoints.
type TutorHandler struct {
	service tutorService
}

// NewTutorHandler constructs the handler.
func NewTutorHandler(svc tutorService) *TutorHandler {
	return &TutorHandler{service: svc}
}

// Upsert godoc
// @Summary Create or update the caller's tutor profile
// @Description subjects accepts a JSON array or a comma-separated string.
// @Tags Tutors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.UpsertTutorProfileRequest true "Tutor profile"
// @Success 200 {object} dto.TutorResponse
// @Failure 400 {object} errors.Error
// @Failure 401 {object} errors.Error
// @Router /tutors [post]
func (h *TutorHandler) Upsert(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req models.UpsertTutorProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.service.UpsertOwn(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.TutorResponse{Message: "Tutor saved", Tutor: profile})
}

// Mine godoc
// @Summary The caller's own tutor profile
// @Tags Tutors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.TutorResponse
// @Failure 401 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /tutors/me [get]
func (h *TutorHandler) Mine(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	profile, err := h.service.GetOwn(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.TutorResponse{Tutor: profile})
}

// ListPublic godoc
// @Summary Active tutors
// @Tags Tutors
// @Produce json
// @Success 200 {object} dto.PublicTutorListResponse
// @Router /tutors [get]
func (h *TutorHandler) ListPublic(c *gin.Context) {
	tutors, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.PublicTutorListResponse{Tutors: tutors})
}

// GetPublic godoc
// @Summary Active tutor detail
// @Tags Tutors
// @Produce json
// @Param id path string true "Tutor profile ID"
// @Success 200 {object} dto.TutorDetailResponse
// @Failure 404 {object} errors.Error
// @Router /tutors/{id} [get]
func (h *TutorHandler) GetPublic(c *gin.Context) {
	tutor, err := h.service.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.TutorDetailResponse{Tutor: tutor})
}

// AdminList godoc
// @Summary All tutor profiles
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, active or inactive"
// @Success 200 {object} dto.TutorListResponse
// @Failure 400 {object} errors.Error
// @Failure 403 {object} errors.Error
// @Router /admin/tutors [get]
func (h *TutorHandler) AdminList(c *gin.Context) {
	tutors, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.TutorListResponse{Tutors: tutors})
}

// SetStatus godoc
// @Summary Moderate a tutor profile
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Tutor profile ID"
// @Param payload body models.TutorStatusRequest true "New status"
// @Success 200 {object} dto.TutorResponse
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /admin/tutors/{id}/status [patch]
func (h *TutorHandler) SetStatus(c *gin.Context) {
	var req models.TutorStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.TutorResponse{Message: "Tutor status updated", Tutor: profile})
}
