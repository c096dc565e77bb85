package countries

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	pkgerrors "github.com/tripdesk/tripdesk-backend/pkg/errors"
)

func setupCountriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS countries (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  iso_code TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS countries`).Error)
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func insertCountry(t *testing.T, db *gorm.DB, name string) models.Country {
	t.Helper()
	country := models.Country{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(&country).Error)
	return country
}

func TestOperationalCountryNamesMixesIDsAndLiterals(t *testing.T) {
	db := setupCountriesTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	thailand := insertCountry(t, db, "Thailand")
	insertCountry(t, db, "Vietnam")

	names, err := svc.OperationalCountryNames(ctx, []string{
		thailand.ID.String(),
		"Japan",
		"  ",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Thailand", "Japan"}, names)
}

func TestOperationalCountryNamesUnknownIDDropped(t *testing.T) {
	db := setupCountriesTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	names, err := svc.OperationalCountryNames(ctx, []string{uuid.NewString()})
	require.NoError(t, err)
	assert.Empty(t, names)

	names, err = svc.OperationalCountryNames(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestGetByNameCaseInsensitive(t *testing.T) {
	db := setupCountriesTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	insertCountry(t, db, "Thailand")

	country, err := svc.GetByName(ctx, "thailand")
	require.NoError(t, err)
	assert.Equal(t, "Thailand", country.Name)

	_, err = svc.GetByName(ctx, "Atlantis")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	_, err = svc.GetByName(ctx, "  ")
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
