package models

import (
	"time"

	"github.com/lib/pq"
)

// TutorStatus gates the public visibility of a tutor profile.
type TutorStatus string

const (
	TutorStatusPending  TutorStatus = "pending"
	TutorStatusActive   TutorStatus = "active"
	TutorStatusInactive TutorStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s TutorStatus) Valid() bool {
	switch s {
	case TutorStatusPending, TutorStatusActive, TutorStatusInactive:
		return true
	}
	return false
}

// TutorProfile is the full tutor_profiles row. Only the owner and admins
// see it in this shape.
type TutorProfile struct {
	ID        string         `db:"id" json:"id"`
	UserID    string         `db:"user_id" json:"user_id"`
	FullName  string         `db:"full_name" json:"full_name"`
	Headline  string         `db:"headline" json:"headline"`
	Bio       string         `db:"bio" json:"bio"`
	Subjects  pq.StringArray `db:"subjects" json:"subjects"`
	AvatarURL *string        `db:"avatar_url" json:"avatar_url"`
	Available bool           `db:"available" json:"available"`
	Status    TutorStatus    `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// UpsertTutorProfileRequest is the owner-supplied tutor profile payload.
type UpsertTutorProfileRequest struct {
	FullName  string      `json:"full_name" validate:"max=120"`
	Headline  string      `json:"headline" validate:"max=200"`
	Bio       string      `json:"bio" validate:"max=5000"`
	Subjects  SubjectList `json:"subjects" validate:"required,min=1,max=30,dive,max=60"`
	AvatarURL *string     `json:"avatar_url" validate:"omitempty,url"`
	Available *bool       `json:"available"`
}

// TutorStatusRequest is the admin moderation payload.
type TutorStatusRequest struct {
	Status TutorStatus `json:"status" validate:"required,oneof=pending active inactive"`
}
