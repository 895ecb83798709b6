package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lummy-consults/lummy-api/internal/middleware"
	"github.com/lummy-consults/lummy-api/internal/models"
)

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, rec
}

func withIdentity(c *gin.Context, identity *models.Identity) {
	c.Set(middleware.ContextUserKey, identity)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

var (
	testUser  = &models.Identity{SubjectID: "user-1", Email: "ada@example.com", Role: models.RoleUser}
	testAdmin = &models.Identity{SubjectID: "admin-1", Email: "root@example.com", Role: models.RoleAdmin}
)
