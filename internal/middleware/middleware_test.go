package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lummy-consults/lummy-api/internal/models"
	"github.com/lummy-consults/lummy-api/internal/service"
	appErrors "github.com/lummy-consults/lummy-api/pkg/errors"
	"github.com/lummy-consults/lummy-api/pkg/response"
)

type fakeVerifier struct {
	identities map[string]*models.Identity
}

func (f *fakeVerifier) Verify(header string) (*models.Identity, error) {
	if header == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingCredential, "")
	}
	if identity, ok := f.identities[header]; ok {
		return identity, nil
	}
	return nil, appErrors.Clone(appErrors.ErrInvalidCredential, "")
}

func newVerifier() *fakeVerifier {
	return &fakeVerifier{identities: map[string]*models.Identity{
		"Bearer user":  {SubjectID: "u1", Email: "u@example.com", Role: models.RoleUser, ExpiresAt: time.Now().Add(time.Hour)},
		"Bearer admin": {SubjectID: "a1", Email: "a@example.com", Role: models.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)},
	}}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) appErrors.Error {
	t.Helper()
	var body appErrors.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJWTAttachesIdentityOnlyAfterVerification(t *testing.T) {
	r := gin.New()
	var seen *models.Identity
	r.GET("/me", JWT(newVerifier()), func(c *gin.Context) {
		seen, _ = IdentityFromContext(c)
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/me", "Bearer user")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.SubjectID)

	seen = nil
	w = serve(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided.", decodeError(t, w).Message)
	assert.Nil(t, seen)

	w = serve(r, http.MethodGet, "/me", "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token.", decodeError(t, w).Message)
	assert.Nil(t, seen)
}

func TestOptionalJWTNeverBlocks(t *testing.T) {
	r := gin.New()
	r.GET("/jobs", OptionalJWT(newVerifier()), func(c *gin.Context) {
		_, ok := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	w := serve(r, http.MethodGet, "/jobs", "Bearer forged")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = serve(r, http.MethodGet, "/jobs", "Bearer admin")
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	r := gin.New()
	r.GET("/admin", JWT(newVerifier()), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/unguarded", RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/admin", "Bearer admin").Code)

	w := serve(r, http.MethodGet, "/admin", "Bearer user")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, appErrors.ErrForbidden.Code, decodeError(t, w).Code)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/admin", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/unguarded", "Bearer admin").Code)
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	metricsSvc := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metricsSvc))
	r.GET("/api/jobs/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/api/jobs/123", "")
	serve(r, http.MethodGet, "/api/jobs/456", "")
	serve(r, http.MethodGet, "/nope", "")

	families, err := metricsSvc.Registry().Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "path" {
					counts[label.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, float64(2), counts["/api/jobs/:id"])
	assert.Equal(t, float64(1), counts["unmatched"])
}

type capturedEvents struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (c *capturedEvents) record(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturedEvents) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestErrorReportingCapturesServerErrorsOnly(t *testing.T) {
	captured := &capturedEvents{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:        "https://public@sentry.invalid/1",
		BeforeSend: captured.record,
	})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(sentry.SetHubOnContext(c.Request.Context(), hub))
		c.Next()
	})
	r.Use(ErrorReporting())
	r.GET("/boom", func(c *gin.Context) {
		response.Error(c, appErrors.Wrap(errors.New("connection refused"), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to list jobs"))
	})
	r.GET("/missing", func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "Job not found"))
	})

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/missing", "").Code)
	assert.Equal(t, 0, captured.count())

	w := serve(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to list jobs", decodeError(t, w).Message)
	assert.Equal(t, 1, captured.count())
}
