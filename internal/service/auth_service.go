package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lummy-consults/lummy-api/internal/models"
	appErrors "github.com/lummy-consults/lummy-api/pkg/errors"
)

const bearerScheme = "Bearer"

// IdentityProvider issues and verifies local credentials. It is the only
// component allowed to turn an Authorization header into an Identity.
type IdentityProvider interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error)
	Me(ctx context.Context, identity *models.Identity) (*models.UserInfo, error)
	Verify(authorizationHeader string) (*models.Identity, error)
}

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret                 string
	TokenExpiry            time.Duration
	Issuer                 string
	AllowAdminRegistration bool
	// BcryptCost defaults to bcrypt.DefaultCost when zero.
	BcryptCost int
}

// AuthService implements IdentityProvider on top of the users table.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	config    AuthConfig
	now       func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

var _ IdentityProvider = (*AuthService)(nil)

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 7 * 24 * time.Hour
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, metrics: metrics, config: config, now: time.Now}
}

// Register creates a local account and returns its public projection.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (info *models.UserInfo, err error) {
	defer func() { s.metrics.RecordAuthAttempt("register", err) }()

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Role = models.UserRole(strings.ToLower(strings.TrimSpace(string(req.Role))))

	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "All fields required")
	}
	if req.Role == models.RoleAdmin && !s.config.AllowAdminRegistration {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Admin accounts cannot be self-registered")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, translateStoreError(err, storeMessages{failure: "failed to check email"})
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// a concurrent registration can still win the unique index
		return nil, translateStoreError(err, storeMessages{conflict: "Email already in use", failure: "failed to create user"})
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	out := user.Info()
	return &out, nil
}

// Signup registers a user-role account from the reduced signup payload.
// The display name defaults to the local part of the email.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.UserInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		email := normalizeEmail(req.Email)
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
	}
	return s.Register(ctx, models.RegisterRequest{
		Name:     name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleUser,
	})
}

// Login authenticates a user. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (result *models.LoginResult, err error) {
	defer func() { s.metrics.RecordAuthAttempt("login", err) }()

	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Email and password required")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		translated := translateStoreError(err, storeMessages{failure: "failed to fetch user"})
		if !errors.Is(translated, appErrors.ErrNotFound) {
			return nil, translated
		}
		s.burnComparison(req.Password)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &models.LoginResult{Token: token, ExpiresAt: expiresAt, User: user.Info()}, nil
}

// Me returns the current user's projection.
func (s *AuthService) Me(ctx context.Context, identity *models.Identity) (*models.UserInfo, error) {
	if identity == nil {
		return nil, appErrors.Clone(appErrors.ErrMissingCredential, "")
	}
	user, err := s.repo.FindByID(ctx, identity.SubjectID)
	if err != nil {
		return nil, translateStoreError(err, storeMessages{notFound: "User not found", failure: "failed to fetch user"})
	}
	info := user.Info()
	return &info, nil
}

// Verify checks the signature and expiry of a bearer token before
// trusting any of its claims.
func (s *AuthService) Verify(authorizationHeader string) (*models.Identity, error) {
	raw, ok := bearerToken(authorizationHeader)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrMissingCredential, "")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Wrap(err, appErrors.ErrExpiredCredential.Code, appErrors.ErrExpiredCredential.Status, appErrors.ErrExpiredCredential.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidCredential.Code, appErrors.ErrInvalidCredential.Status, appErrors.ErrInvalidCredential.Message)
	}
	if !token.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredential, "")
	}

	return &models.Identity{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *AuthService) issueToken(user *models.User) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.TokenExpiry)
	claims := &models.JWTClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// burnComparison spends the same bcrypt work as a real login so response
// time does not reveal whether an email is registered.
func (s *AuthService) burnComparison(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.config.BcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
