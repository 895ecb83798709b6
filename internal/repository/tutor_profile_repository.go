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

const tutorInsertColumns = `id, user_id, full_name, headline, bio, subjects, avatar_url, available, status, created_at, updated_at`

// tutorColumns tolerates NULL text columns in rows written outside this service.
const tutorColumns = `id, user_id, COALESCE(full_name, '') AS full_name, COALESCE(headline, '') AS headline, ` +
	`COALESCE(bio, '') AS bio, subjects, avatar_url, available, status, created_at, updated_at`

const upsertTutorProfileQuery = `INSERT INTO tutor_profiles (` + tutorInsertColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
ON CONFLICT (user_id) DO UPDATE SET
	full_name = EXCLUDED.full_name,
	headline = EXCLUDED.headline,
	bio = EXCLUDED.bio,
	subjects = EXCLUDED.subjects,
	avatar_url = EXCLUDED.avatar_url,
	available = EXCLUDED.available,
	updated_at = EXCLUDED.updated_at
RETURNING ` + tutorColumns

// TutorProfileRepository persists tutor profiles keyed by their owner.
type TutorProfileRepository struct {
	db *sqlx.DB
}

// NewTutorProfileRepository constructs the repository.
func NewTutorProfileRepository(db *sqlx.DB) *TutorProfileRepository {
	return &TutorProfileRepository{db: db}
}

// Upsert creates the owner's profile or overwrites its editable fields.
// Status and created_at of an existing row are left untouched, and
// subjects are replaced wholesale.
func (r *TutorProfileRepository) Upsert(ctx context.Context, profile *models.TutorProfile) (*models.TutorProfile, error) {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.Status == "" {
		profile.Status = models.TutorStatusPending
	}
	now := time.Now().UTC()

	var stored models.TutorProfile
	if err := r.db.GetContext(ctx, &stored, upsertTutorProfileQuery,
		profile.ID, profile.UserID, profile.FullName, profile.Headline, profile.Bio,
		profile.Subjects, profile.AvatarURL, profile.Available, profile.Status, now,
	); err != nil {
		return nil, fmt.Errorf("upsert tutor profile: %w", err)
	}
	return &stored, nil
}

// FindByUserID returns the profile owned by userID.
func (r *TutorProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.TutorProfile, error) {
	return r.findOne(ctx, "find tutor profile by user", `SELECT `+tutorColumns+` FROM tutor_profiles WHERE user_id = $1`, userID)
}

// FindActiveByID returns a profile only when it is publicly visible.
func (r *TutorProfileRepository) FindActiveByID(ctx context.Context, id string) (*models.TutorProfile, error) {
	return r.findOne(ctx, "find active tutor profile", `SELECT `+tutorColumns+` FROM tutor_profiles WHERE id = $1 AND status = $2`, id, models.TutorStatusActive)
}

// ListActive returns every publicly visible profile, newest first.
func (r *TutorProfileRepository) ListActive(ctx context.Context) ([]models.TutorProfile, error) {
	status := models.TutorStatusActive
	return r.List(ctx, &status)
}

// List returns profiles, optionally narrowed to one status, newest first.
func (r *TutorProfileRepository) List(ctx context.Context, status *models.TutorStatus) ([]models.TutorProfile, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutor_profiles`
	var args []interface{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	profiles := make([]models.TutorProfile, 0)
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("list tutor profiles: %w", err)
	}
	return profiles, nil
}

// UpdateStatus sets the moderation status and returns the updated row.
func (r *TutorProfileRepository) UpdateStatus(ctx context.Context, id string, status models.TutorStatus) (*models.TutorProfile, error) {
	return r.findOne(ctx, "update tutor status",
		`UPDATE tutor_profiles SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+tutorColumns,
		id, status, time.Now().UTC())
}

func (r *TutorProfileRepository) findOne(ctx context.Context, op, query string, args ...interface{}) (*models.TutorProfile, error) {
	var profile models.TutorProfile
	if err := r.db.GetContext(ctx, &profile, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &profile, nil
}
