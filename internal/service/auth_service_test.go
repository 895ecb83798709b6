package service

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lummy-consults/lummy-api/internal/models"
	appErrors "github.com/lummy-consults/lummy-api/pkg/errors"
)

const testSecret = "test-secret"

type memoryUserRepo struct {
	mu        sync.Mutex
	byID      map[string]*models.User
	createErr error
	findErr   error
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byID: make(map[string]*models.User)}
}

func (m *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memoryUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.byID {
		if u.Email == user.Email {
			return &pq.Error{Code: "23505"}
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	m.byID[user.ID] = &clone
	return nil
}

func (m *memoryUserRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func newTestAuthService(repo authUserRepository) *AuthService {
	return NewAuthService(repo, nil, nil, NewMetricsService(), AuthConfig{
		Secret:      testSecret,
		TokenExpiry: 7 * 24 * time.Hour,
		Issuer:      "lummy-test",
		BcryptCost:  bcrypt.MinCost,
	})
}

func registerAda(t *testing.T, svc *AuthService) *models.UserInfo {
	t.Helper()
	info, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Ada Obi",
		Email:    "  Ada@Example.com ",
		Password: "s3cret-pass",
		Role:     models.RoleUser,
	})
	require.NoError(t, err)
	return info
}

func assertAppError(t *testing.T, err error, target *appErrors.Error) *appErrors.Error {
	t.Helper()
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr), "expected *errors.Error, got %T", err)
	assert.Equal(t, target.Code, appErr.Code)
	assert.Equal(t, target.Status, appErr.Status)
	return appErr
}

func TestRegisterStoresHashedPasswordAndNormalisedEmail(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newTestAuthService(repo)

	info := registerAda(t, svc)
	assert.Equal(t, "ada@example.com", info.Email)
	assert.Equal(t, "Ada Obi", info.Name)
	assert.Equal(t, models.RoleUser, info.Role)
	assert.False(t, info.CreatedAt.IsZero())

	stored, err := repo.FindByID(context.Background(), info.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestRegisterRequiresEveryField(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())

	cases := []models.RegisterRequest{
		{Email: "a@example.com", Password: "pw", Role: models.RoleUser},
		{Name: "A", Password: "pw", Role: models.RoleUser},
		{Name: "A", Email: "a@example.com", Role: models.RoleUser},
		{Name: "A", Email: "a@example.com", Password: "pw"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		appErr := assertAppError(t, err, appErrors.ErrValidation)
		assert.Equal(t, "All fields required", appErr.Message)
	}
}

func TestRegisterRejectsMalformedInput(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "A", Email: "not-an-email", Password: "pw", Role: models.RoleUser})
	appErr := assertAppError(t, err, appErrors.ErrValidation)
	assert.Equal(t, "Invalid email address", appErr.Message)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Name: "A", Email: "a@example.com", Password: "pw", Role: "superuser"})
	appErr = assertAppError(t, err, appErrors.ErrValidation)
	assert.Contains(t, appErr.Message, "role must be one of")

	_, err = svc.Register(context.Background(), models.RegisterRequest{Name: "A", Email: "a@example.com", Password: strings.Repeat("x", 73), Role: models.RoleUser})
	assertAppError(t, err, appErrors.ErrValidation)
}

func TestRegisterDuplicateEmailCreatesNothing(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newTestAuthService(repo)
	registerAda(t, svc)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Other", Email: "ADA@example.com", Password: "another", Role: models.RoleUser,
	})
	appErr := assertAppError(t, err, appErrors.ErrConflict)
	assert.Equal(t, "Email already in use", appErr.Message)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, 1, repo.count())
}

func TestRegisterUniqueViolationRaceIsConflict(t *testing.T) {
	repo := newMemoryUserRepo()
	repo.createErr = &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "A", Email: "a@example.com", Password: "pw", Role: models.RoleUser})
	appErr := assertAppError(t, err, appErrors.ErrConflict)
	assert.Equal(t, "Email already in use", appErr.Message)
}

func TestRegisterAdminIsGated(t *testing.T) {
	req := models.RegisterRequest{Name: "Root", Email: "root@example.com", Password: "pw", Role: models.RoleAdmin}

	svc := newTestAuthService(newMemoryUserRepo())
	_, err := svc.Register(context.Background(), req)
	assertAppError(t, err, appErrors.ErrForbidden)

	svc.config.AllowAdminRegistration = true
	info, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, info.Role)
}

func TestSignupDefaultsNameAndRole(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())

	info, err := svc.Signup(context.Background(), models.SignupRequest{Email: "Kemi.A@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "kemi.a", info.Name)
	assert.Equal(t, models.RoleUser, info.Role)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())
	info := registerAda(t, svc)

	result, err := svc.Login(context.Background(), models.LoginRequest{Email: "ADA@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, info.ID, result.User.ID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), result.ExpiresAt, time.Minute)

	identity, err := svc.Verify("Bearer " + result.Token)
	require.NoError(t, err)
	assert.Equal(t, info.ID, identity.SubjectID)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, models.RoleUser, identity.Role)
	assert.Equal(t, result.ExpiresAt.Unix(), identity.ExpiresAt.Unix())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())
	registerAda(t, svc)

	_, unknownErr := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	_, wrongErr := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "wrong"})

	unknown := assertAppError(t, unknownErr, appErrors.ErrInvalidCredentials)
	wrong := assertAppError(t, wrongErr, appErrors.ErrInvalidCredentials)
	assert.Equal(t, unknown.Message, wrong.Message)
	assert.Equal(t, "Invalid credentials", wrong.Message)
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com"})
	appErr := assertAppError(t, err, appErrors.ErrValidation)
	assert.Equal(t, "Email and password required", appErr.Message)
}

func TestLoginStoreFailureIsUpstream(t *testing.T) {
	repo := newMemoryUserRepo()
	repo.findErr = errors.New("connection reset")
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "pw"})
	assertAppError(t, err, appErrors.ErrUpstream)
}

func TestMeReturnsProjection(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())
	info := registerAda(t, svc)

	me, err := svc.Me(context.Background(), &models.Identity{SubjectID: info.ID})
	require.NoError(t, err)
	assert.Equal(t, *info, *me)
}

func TestMeForDeletedUser(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())

	_, err := svc.Me(context.Background(), &models.Identity{SubjectID: uuid.NewString()})
	appErr := assertAppError(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "User not found", appErr.Message)
}

func TestVerifyMissingCredential(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "token-without-scheme"} {
		_, err := svc.Verify(header)
		assertAppError(t, err, appErrors.ErrMissingCredential)
	}
}

func TestVerifyExpiredCredential(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())
	registerAda(t, svc)
	result, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	_, err = svc.Verify("Bearer " + result.Token)
	assertAppError(t, err, appErrors.ErrExpiredCredential)
}

func TestVerifyRejectsForgedTokens(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())
	registerAda(t, svc)
	result, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	elevated := models.JWTClaims{
		Email: "ada@example.com",
		Role:  models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   result.User.ID,
			Issuer:    "lummy-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, elevated).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, elevated).SignedString([]byte("someone-else"))
	require.NoError(t, err)

	parts := strings.Split(result.Token, ".")
	require.Len(t, parts, 3)
	forgedPayload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"` + result.User.ID + `","email":"ada@example.com","role":"admin","iss":"lummy-test","exp":4102444800}`))
	tampered := parts[0] + "." + forgedPayload + "." + parts[2]

	wrongIssuer := elevated
	wrongIssuer.Issuer = "elsewhere"
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wrongIssuer).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry := elevated
	noExpiry.ExpiresAt = nil
	eternal, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noExpiry).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"alg none":         unsigned,
		"other secret":     otherKey,
		"tampered payload": tampered,
		"wrong issuer":     foreign,
		"no expiry":        eternal,
		"garbage":          "not.a.token",
	} {
		identity, err := svc.Verify("Bearer " + token)
		assert.Nil(t, identity, name)
		appErr := assertAppError(t, err, appErrors.ErrInvalidCredential)
		assert.Equal(t, "Invalid or expired token.", appErr.Message, name)
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	svc := newTestAuthService(newMemoryUserRepo())
	claims := models.JWTClaims{
		Role: "SUPERADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "lummy-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify("bearer " + token)
	assertAppError(t, err, appErrors.ErrInvalidCredential)
}
