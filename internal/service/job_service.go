package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lummy-consults/lummy-api/internal/models"
	appErrors "github.com/lummy-consults/lummy-api/pkg/errors"
	"github.com/lummy-consults/lummy-api/pkg/export"
)

type jobRepository interface {
	ListPublished(ctx context.Context) ([]models.Job, error)
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	FindByID(ctx context.Context, id string) (*models.Job, error)
	FindPublishedByID(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) (*models.Job, error)
	Delete(ctx context.Context, id string) error
}

var jobNotFound = storeMessages{notFound: "Job not found", failure: "failed to load job"}

var jobExportHeaders = []string{"ID", "Title", "Company", "Location", "Status", "Posted By", "Created At"}

// ExportResult is a rendered job export ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// JobService manages the job board.
type JobService struct {
	repo      jobRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewJobService constructs a JobService. cache may be nil.
func NewJobService(repo jobRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &JobService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// ListPublic returns published jobs, newest first.
func (s *JobService) ListPublic(ctx context.Context) ([]models.Job, error) {
	return cachedList(ctx, s.cache, jobsPublicKey, func(ctx context.Context) ([]models.Job, error) {
		jobs, err := s.repo.ListPublished(ctx)
		if err != nil {
			return nil, translateStoreError(err, storeMessages{failure: "failed to list jobs"})
		}
		return jobs, nil
	})
}

// GetPublic returns a job only while it is published.
func (s *JobService) GetPublic(ctx context.Context, id string) (*models.Job, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, jobNotFound.notFound)
	}
	job, err := s.repo.FindPublishedByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, jobNotFound)
	}
	return job, nil
}

// List returns jobs of every status for admins.
func (s *JobService) List(ctx context.Context, status string) ([]models.Job, error) {
	filter, err := parseJobFilter(status)
	if err != nil {
		return nil, err
	}
	jobs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, translateStoreError(err, storeMessages{failure: "failed to list jobs"})
	}
	return jobs, nil
}

// Create stores a new job posted by the calling admin.
func (s *JobService) Create(ctx context.Context, identity *models.Identity, req models.JobRequest) (*models.Job, error) {
	if identity == nil {
		return nil, appErrors.Clone(appErrors.ErrMissingCredential, "")
	}
	req = normalizeJobRequest(req)
	if req.Status == "" {
		req.Status = models.JobStatusDraft
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Title and description are required")
	}

	postedBy := identity.SubjectID
	job, err := s.repo.Create(ctx, &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Status:      req.Status,
		PostedBy:    &postedBy,
	})
	if err != nil {
		return nil, translateStoreError(err, storeMessages{failure: "failed to create job"})
	}

	s.cache.Invalidate(ctx, jobsCachePattern)
	s.logger.Info("job created", zap.String("job_id", job.ID), zap.String("status", string(job.Status)))
	return job, nil
}

// Update overwrites a job. Omitting status keeps the current one.
func (s *JobService) Update(ctx context.Context, id string, req models.JobRequest) (*models.Job, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, jobNotFound.notFound)
	}
	req = normalizeJobRequest(req)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Title and description are required")
	}

	if req.Status == "" {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, translateStoreError(err, jobNotFound)
		}
		req.Status = current.Status
	}

	job, err := s.repo.Update(ctx, &models.Job{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		return nil, translateStoreError(err, jobNotFound)
	}

	s.cache.Invalidate(ctx, jobsCachePattern)
	s.logger.Info("job updated", zap.String("job_id", job.ID), zap.String("status", string(job.Status)))
	return job, nil
}

// Delete removes a job.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return appErrors.Clone(appErrors.ErrNotFound, jobNotFound.notFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateStoreError(err, jobNotFound)
	}
	s.cache.Invalidate(ctx, jobsCachePattern)
	s.logger.Info("job deleted", zap.String("job_id", id))
	return nil
}

// Export renders every job, optionally filtered by status, as CSV or PDF.
func (s *JobService) Export(ctx context.Context, format, status string) (*ExportResult, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be one of: csv, pdf")
	}
	jobs, err := s.List(ctx, status)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Title: "Lummy Consults jobs", Headers: jobExportHeaders}
	for _, job := range jobs {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":         job.ID,
			"Title":      job.Title,
			"Company":    deref(job.Company),
			"Location":   deref(job.Location),
			"Status":     string(job.Status),
			"Posted By":  deref(job.PostedBy),
			"Created At": job.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	body, err := export.Render(f, dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("jobs-%s.%s", s.now().UTC().Format("20060102-150405"), f),
		ContentType: f.ContentType(),
		Body:        body,
	}, nil
}

func parseJobFilter(status string) (models.JobFilter, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return models.JobFilter{}, nil
	}
	st := models.JobStatus(status)
	if !st.Valid() {
		return models.JobFilter{}, appErrors.Clone(appErrors.ErrValidation, "status must be one of: draft, published, archived")
	}
	return models.JobFilter{Status: &st}, nil
}

func normalizeJobRequest(req models.JobRequest) models.JobRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Company = trimmedOrNil(req.Company)
	req.Location = trimmedOrNil(req.Location)
	req.Status = models.JobStatus(strings.ToLower(strings.TrimSpace(string(req.Status))))
	return req
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
