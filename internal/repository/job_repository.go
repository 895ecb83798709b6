package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lummy-consults/lummy-api/internal/models"
)

const jobColumns = `id, title, description, company, location, status, posted_by, created_at, updated_at`

// JobRepository provides database access for job postings.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository constructs the repository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// ListPublished returns published jobs, newest first.
func (r *JobRepository) ListPublished(ctx context.Context) ([]models.Job, error) {
	status := models.JobStatusPublished
	return r.List(ctx, models.JobFilter{Status: &status})
}

// List returns jobs of every status unless the filter narrows it.
func (r *JobRepository) List(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	var args []interface{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	jobs := make([]models.Job, 0)
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// FindByID returns a job of any status.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	return r.getOne(ctx, "find job", `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
}

// FindPublishedByID returns a job only when it is on the public board.
func (r *JobRepository) FindPublishedByID(ctx context.Context, id string) (*models.Job, error) {
	return r.getOne(ctx, "find published job", `SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND status = $2`, id, models.JobStatusPublished)
}

// Create inserts a job and returns the stored row.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.JobStatusDraft
	}
	now := time.Now().UTC()

	const query = `INSERT INTO jobs (` + jobColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING ` + jobColumns
	return r.getOne(ctx, "create job", query,
		job.ID, job.Title, job.Description, job.Company, job.Location, job.Status, job.PostedBy, now)
}

// Update overwrites the editable fields of a job. Any status may move to
// any other status.
func (r *JobRepository) Update(ctx context.Context, job *models.Job) (*models.Job, error) {
	const query = `UPDATE jobs SET title = $2, description = $3, company = $4, location = $5, status = $6, updated_at = $7 WHERE id = $1 RETURNING ` + jobColumns
	return r.getOne(ctx, "update job", query,
		job.ID, job.Title, job.Description, job.Company, job.Location, job.Status, time.Now().UTC())
}

// Delete removes a job. It returns sql.ErrNoRows when nothing matched.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete job rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *JobRepository) getOne(ctx context.Context, op, query string, args ...interface{}) (*models.Job, error) {
	var job models.Job
	if err := r.db.GetContext(ctx, &job, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &job, nil
}
