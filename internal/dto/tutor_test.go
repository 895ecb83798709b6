package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lummy-consults/lummy-api/internal/models"
)

func sampleProfile() models.TutorProfile {
	avatar := "https://cdn.example.com/a.png"
	return models.TutorProfile{
		ID:        "tp-1",
		UserID:    "user-1",
		FullName:  "Ada Obi",
		Headline:  "Maths made simple",
		Bio:       "Ten years of WAEC prep.",
		Subjects:  []string{"Math", "Physics"},
		AvatarURL: &avatar,
		Status:    models.TutorStatusActive,
		CreatedAt: time.Now(),
	}
}

func TestPublicProjectionHidesPrivateFields(t *testing.T) {
	out := ToPublicTutorProfile(sampleProfile())

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.ElementsMatch(t, []string{"id", "headline", "subjects", "fullName", "avatarUrl"}, keys(fields))
	assert.Equal(t, "Ada Obi", fields["fullName"])
}

func TestDetailProjectionAddsBio(t *testing.T) {
	out := ToTutorDetailProfile(sampleProfile())

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.ElementsMatch(t, []string{"id", "headline", "bio", "subjects", "fullName", "avatarUrl"}, keys(fields))
	assert.NotContains(t, fields, "status")
	assert.NotContains(t, fields, "user_id")
}

func TestNilSubjectsBecomeEmptyList(t *testing.T) {
	p := sampleProfile()
	p.Subjects = nil

	raw, err := json.Marshal(ToPublicTutorProfile(p))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"subjects":[]`)
}

func TestProjectionDoesNotAliasSubjects(t *testing.T) {
	p := sampleProfile()
	out := ToTutorDetailProfile(p)
	out.Subjects[0] = "Changed"
	assert.Equal(t, "Math", p.Subjects[0])
}

func TestToPublicTutorProfilesKeepsOrder(t *testing.T) {
	a, b := sampleProfile(), sampleProfile()
	b.ID = "tp-2"
	out := ToPublicTutorProfiles([]models.TutorProfile{a, b})
	require.Len(t, out, 2)
	assert.Equal(t, "tp-1", out[0].ID)
	assert.Equal(t, "tp-2", out[1].ID)
	assert.NotNil(t, ToPublicTutorProfiles(nil))
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
