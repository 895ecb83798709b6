package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lummy-consults/lummy-api/internal/models"
)

var tutorCols = []string{"id", "user_id", "full_name", "headline", "bio", "subjects", "avatar_url", "available", "status", "created_at", "updated_at"}

func TestUpsertTutorProfileReturnsStoredRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTutorProfileRepository(db)

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT INTO tutor_profiles.*ON CONFLICT \(user_id\) DO UPDATE SET`).
		WithArgs(sqlmock.AnyArg(), "user-1", "Ada Obi", "Maths", "bio", `{"Math","Physics"}`, nil, true, "pending", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(tutorCols).
			AddRow("tp-1", "user-1", "Ada Obi", "Maths", "bio", `{Math,Physics}`, nil, true, "active", now, now))

	stored, err := repo.Upsert(context.Background(), &models.TutorProfile{
		UserID:    "user-1",
		FullName:  "Ada Obi",
		Headline:  "Maths",
		Bio:       "bio",
		Subjects:  pq.StringArray{"Math", "Physics"},
		Available: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "tp-1", stored.ID)
	assert.Equal(t, pq.StringArray{"Math", "Physics"}, stored.Subjects)
	assert.Equal(t, models.TutorStatusActive, stored.Status, "existing status is preserved by the store")
	assert.Nil(t, stored.AvatarURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertLeavesStatusAndCreatedAtAlone(t *testing.T) {
	match := regexp.MustCompile(`(?s)DO UPDATE SET(.*)RETURNING`).FindStringSubmatch(upsertTutorProfileQuery)
	require.Len(t, match, 2)
	set := match[1]
	assert.NotContains(t, set, "status =")
	assert.NotContains(t, set, "created_at =")
	assert.Contains(t, set, "subjects = EXCLUDED.subjects")
}

func TestFindActiveByIDFiltersOnStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTutorProfileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tutor_profiles WHERE id = $1 AND status = $2")).
		WithArgs("tp-1", "active").
		WillReturnRows(sqlmock.NewRows(tutorCols))

	_, err := repo.FindActiveByID(context.Background(), "tp-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveOrdersNewestFirst(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTutorProfileRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM tutor_profiles WHERE status = $1 ORDER BY created_at DESC")).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows(tutorCols).
			AddRow("tp-2", "user-2", "B", "h", "b", `{Art}`, "https://x/y.png", true, "active", now, now).
			AddRow("tp-1", "user-1", "A", "h", "b", `{Math}`, nil, true, "active", now.Add(-time.Hour), now))

	profiles, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "tp-2", profiles[0].ID)
	require.NotNil(t, profiles[0].AvatarURL)
	assert.Equal(t, "https://x/y.png", *profiles[0].AvatarURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllWithoutStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTutorProfileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + tutorColumns + " FROM tutor_profiles ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(tutorCols))

	profiles, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTutorStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTutorProfileRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tutor_profiles SET status = $2, updated_at = $3 WHERE id = $1 RETURNING")).
		WithArgs("tp-1", "active", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(tutorCols).
			AddRow("tp-1", "user-1", "A", "h", "b", `{Math}`, nil, true, "active", now, now))

	profile, err := repo.UpdateStatus(context.Background(), "tp-1", models.TutorStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.TutorStatusActive, profile.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTutorSelectCoalescesTextColumns(t *testing.T) {
	for _, col := range []string{"full_name", "headline", "bio"} {
		assert.Contains(t, tutorColumns, "COALESCE("+col+", '') AS "+col)
	}
	assert.NotContains(t, tutorInsertColumns, "COALESCE")
	assert.Contains(t, upsertTutorProfileQuery, "RETURNING "+tutorColumns)
}

func TestListActiveScansCoalescedRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTutorProfileRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + tutorColumns + " FROM tutor_profiles WHERE status = $1")).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows(tutorCols).
			AddRow("tp-1", "user-1", "", "", "bio", `{Math}`, nil, true, "active", now, now))

	profiles, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Empty(t, profiles[0].FullName)
	assert.Empty(t, profiles[0].Headline)
	assert.NoError(t, mock.ExpectationsWereMet())
}
