package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/lummy-consults/lummy-api/internal/dto"
	"github.com/lummy-consults/lummy-api/internal/models"
	appErrors "github.com/lummy-consults/lummy-api/pkg/errors"
)

type tutorProfileRepository interface {
	Upsert(ctx context.Context, profile *models.TutorProfile) (*models.TutorProfile, error)
	FindByUserID(ctx context.Context, userID string) (*models.TutorProfile, error)
	FindActiveByID(ctx context.Context, id string) (*models.TutorProfile, error)
	ListActive(ctx context.Context) ([]models.TutorProfile, error)
	List(ctx context.Context, status *models.TutorStatus) ([]models.TutorProfile, error)
	UpdateStatus(ctx context.Context, id string, status models.TutorStatus) (*models.TutorProfile, error)
}

type tutorUserLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

var tutorNotFound = storeMessages{notFound: "Tutor not found", failure: "failed to load tutor profile"}

// TutorService manages tutor profiles and their public projections.
type TutorService struct {
	repo      tutorProfileRepository
	users     tutorUserLookup
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTutorService constructs a TutorService. cache may be nil.
func NewTutorService(repo tutorProfileRepository, users tutorUserLookup, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TutorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &TutorService{repo: repo, users: users, cache: cache, validator: validate, logger: logger}
}

// UpsertOwn creates or overwrites the caller's tutor profile.
func (s *TutorService) UpsertOwn(ctx context.Context, identity *models.Identity, req models.UpsertTutorProfileRequest) (*models.TutorProfile, error) {
	if identity == nil {
		return nil, appErrors.Clone(appErrors.ErrMissingCredential, "")
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Headline = strings.TrimSpace(req.Headline)
	req.Bio = strings.TrimSpace(req.Bio)
	req.Subjects = models.NormalizeSubjects(req.Subjects)
	req.AvatarURL = trimmedOrNil(req.AvatarURL)

	if len(req.Subjects) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "At least one subject is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "At least one subject is required")
	}

	if req.FullName == "" {
		user, err := s.users.FindByID(ctx, identity.SubjectID)
		if err != nil {
			return nil, translateStoreError(err, storeMessages{notFound: "User not found", failure: "failed to load user"})
		}
		req.FullName = user.Name
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	stored, err := s.repo.Upsert(ctx, &models.TutorProfile{
		UserID:    identity.SubjectID,
		FullName:  req.FullName,
		Headline:  req.Headline,
		Bio:       req.Bio,
		Subjects:  pq.StringArray(req.Subjects),
		AvatarURL: req.AvatarURL,
		Available: available,
		Status:    models.TutorStatusPending,
	})
	if err != nil {
		return nil, translateStoreError(err, storeMessages{failure: "failed to save tutor profile"})
	}

	s.cache.Invalidate(ctx, tutorsCachePattern)
	s.logger.Info("tutor profile saved", zap.String("user_id", identity.SubjectID), zap.String("profile_id", stored.ID))
	return stored, nil
}

// GetOwn returns the caller's full profile row.
func (s *TutorService) GetOwn(ctx context.Context, identity *models.Identity) (*models.TutorProfile, error) {
	if identity == nil {
		return nil, appErrors.Clone(appErrors.ErrMissingCredential, "")
	}
	profile, err := s.repo.FindByUserID(ctx, identity.SubjectID)
	if err != nil {
		return nil, translateStoreError(err, storeMessages{notFound: "Tutor profile not found", failure: tutorNotFound.failure})
	}
	return profile, nil
}

// ListPublic returns the listing projection of every active tutor.
func (s *TutorService) ListPublic(ctx context.Context) ([]dto.PublicTutorProfile, error) {
	return cachedList(ctx, s.cache, tutorsPublicKey, func(ctx context.Context) ([]dto.PublicTutorProfile, error) {
		rows, err := s.repo.ListActive(ctx)
		if err != nil {
			return nil, translateStoreError(err, storeMessages{failure: "failed to list tutors"})
		}
		return dto.ToPublicTutorProfiles(rows), nil
	})
}

// GetPublic returns an active tutor's detail projection. Pending,
// inactive and missing profiles are all reported as not found.
func (s *TutorService) GetPublic(ctx context.Context, id string) (*dto.TutorDetailProfile, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, tutorNotFound.notFound)
	}
	profile, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, tutorNotFound)
	}
	out := dto.ToTutorDetailProfile(*profile)
	return &out, nil
}

// List returns full rows for admins, optionally filtered by status.
func (s *TutorService) List(ctx context.Context, status string) ([]models.TutorProfile, error) {
	var filter *models.TutorStatus
	if status = strings.TrimSpace(status); status != "" {
		st := models.TutorStatus(strings.ToLower(status))
		if !st.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "status must be one of: pending, active, inactive")
		}
		filter = &st
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, translateStoreError(err, storeMessages{failure: "failed to list tutors"})
	}
	return rows, nil
}

// SetStatus moderates a profile's public visibility.
func (s *TutorService) SetStatus(ctx context.Context, id string, req models.TutorStatusRequest) (*models.TutorProfile, error) {
	req.Status = models.TutorStatus(strings.ToLower(strings.TrimSpace(string(req.Status))))
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "status is required")
	}
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, tutorNotFound.notFound)
	}

	profile, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, translateStoreError(err, tutorNotFound)
	}

	s.cache.Invalidate(ctx, tutorsCachePattern)
	s.logger.Info("tutor status changed", zap.String("profile_id", id), zap.String("status", string(req.Status)))
	return profile, nil
}
