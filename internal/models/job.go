package models

import "time"

// JobStatus drives job board visibility.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusArchived  JobStatus = "archived"
)

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusPublished, JobStatusArchived:
		return true
	}
	return false
}

// Job represents a row in the jobs table.
type Job struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Company     *string   `db:"company" json:"company"`
	Location    *string   `db:"location" json:"location"`
	Status      JobStatus `db:"status" json:"status"`
	PostedBy    *string   `db:"posted_by" json:"posted_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// JobFilter narrows admin job listings.
type JobFilter struct {
	Status *JobStatus
}

// JobRequest is the create/update payload accepted from admins.
type JobRequest struct {
	Title       string    `json:"title" validate:"required,min=5,max=200"`
	Description string    `json:"description" validate:"required,min=20"`
	Company     *string   `json:"company" validate:"omitempty,max=200"`
	Location    *string   `json:"location" validate:"omitempty,min=2,max=200"`
	Status      JobStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
}
