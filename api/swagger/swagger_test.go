package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocIsRegisteredAndValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Contains(t, parsed.Paths, "/auth/login")
	assert.Contains(t, parsed.Paths, "/admin/jobs/export")
	assert.Contains(t, parsed.Paths, "/tutors/{id}")
}

func TestRegisterDocumentsAdminGate(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Paths map[string]map[string]struct {
			Description string                     `json:"description"`
			Responses   map[string]json.RawMessage `json:"responses"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	register := parsed.Paths["/auth/register"]["post"]
	assert.Contains(t, register.Description, "AUTH_ALLOW_ADMIN_REGISTRATION")
	assert.Contains(t, register.Responses, "403")
}
