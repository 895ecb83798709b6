package dto

import "github.com/lummy-consults/lummy-api/internal/models"

// MessageResponse carries a bare status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is returned by register and signup.
type UserResponse struct {
	Message string          `json:"message"`
	User    models.UserInfo `json:"user"`
}

// LoginResponse carries the issued token in both the flat and the
// session-shaped form.
type LoginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Session models.Session  `json:"session"`
	User    models.UserInfo `json:"user"`
}

// ProtectedResponse echoes the verified identity.
type ProtectedResponse struct {
	Message string           `json:"message"`
	User    *models.Identity `json:"user"`
}

// TutorResponse wraps a full tutor profile row.
type TutorResponse struct {
	Message string               `json:"message,omitempty"`
	Tutor   *models.TutorProfile `json:"tutor"`
}

// TutorDetailResponse wraps a public tutor detail projection.
type TutorDetailResponse struct {
	Tutor *TutorDetailProfile `json:"tutor"`
}

// PublicTutorListResponse wraps the public tutor listing.
type PublicTutorListResponse struct {
	Tutors []PublicTutorProfile `json:"tutors"`
}

// TutorListResponse wraps full rows for admins.
type TutorListResponse struct {
	Tutors []models.TutorProfile `json:"tutors"`
}

// JobResponse wraps a single job.
type JobResponse struct {
	Message string      `json:"message,omitempty"`
	Job     *models.Job `json:"job"`
}

// JobListResponse wraps a list of jobs.
type JobListResponse struct {
	Jobs []models.Job `json:"jobs"`
}
