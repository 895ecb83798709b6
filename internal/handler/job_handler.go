package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lummy-consults/lummy-api/internal/dto"
	"github.com/lummy-consults/lummy-api/internal/models"
	"github.com/lummy-consults/lummy-api/internal/service"
	"github.com/lummy-consults/lummy-api/pkg/response"
)

type jobService interface {
	ListPublic(ctx context.Context) ([]models.Job, error)
	GetPublic(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context, status string) ([]models.Job, error)
	Create(ctx context.Context, identity *models.Identity, req models.JobRequest) (*models.Job, error)
	Update(ctx context.Context, id string, req models.JobRequest) (*models.Job, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, format, status string) (*service.ExportResult, error)
}

// JobHandler serves the job board.
type JobHandler struct {
	service jobService
}

// NewJobHandler constructs the handler.
func NewJobHandler(svc jobService) *JobHandler {
	return &JobHandler{service: svc}
}

// ListPublic godoc
// @Summary Published jobs, newest first
// @Tags Jobs
// @Produce json
// @Success 200 {object} dto.JobListResponse
// @Router /jobs [get]
func (h *JobHandler) ListPublic(c *gin.Context) {
	jobs, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.JobListResponse{Jobs: jobs})
}

// GetPublic godoc
// @Summary A published job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} errors.Error
// @Router /jobs/{id} [get]
func (h *JobHandler) GetPublic(c *gin.Context) {
	job, err := h.service.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.JobResponse{Job: job})
}

// AdminList godoc
// @Summary All jobs
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "draft, published or archived"
// @Success 200 {object} dto.JobListResponse
// @Failure 403 {object} errors.Error
// @Router /admin/jobs [get]
func (h *JobHandler) AdminList(c *gin.Context) {
	jobs, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.JobListResponse{Jobs: jobs})
}

// Create godoc
// @Summary Post a job
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.JobRequest true "Job"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} errors.Error
// @Failure 403 {object} errors.Error
// @Router /admin/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req models.JobRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.JobResponse{Message: "Job created", Job: job})
}

// Update godoc
// @Summary Update a job
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body models.JobRequest true "Job"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /admin/jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	var req models.JobRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.JobResponse{Message: "Job updated", Job: job})
}

// Delete godoc
// @Summary Delete a job
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /admin/jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Download jobs as CSV or PDF
// @Tags Admin
// @Security BearerAuth
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param status query string false "draft, published or archived"
// @Success 200 {file} file
// @Failure 400 {object} errors.Error
// @Router /admin/jobs/export [get]
func (h *JobHandler) Export(c *gin.Context) {
	out, err := h.service.Export(c.Request.Context(), c.Query("format"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, out.Filename, out.ContentType, out.Body)
}
