package rules

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

func setupRulesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS assignment_rules (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  enabled INTEGER NOT NULL DEFAULT 1,
  description TEXT,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS assignment_rules`).Error)
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func insertRule(t *testing.T, db *gorm.DB, name enums.AssignmentRuleName, enabled bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.AssignmentRule{
		ID:      uuid.New(),
		Name:    name,
		Enabled: enabled,
	}).Error)
}

func TestRepositoryFindByNames(t *testing.T) {
	db := setupRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insertRule(t, db, enums.RuleExpertiseMatch, true)
	insertRule(t, db, enums.RuleRoundRobin, false)

	rows, err := repo.FindByNames(ctx, []enums.AssignmentRuleName{enums.RuleExpertiseMatch, enums.RuleRoundRobin, enums.RuleWorkloadBalance})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	rows, err = repo.FindByNames(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositorySetEnabled(t *testing.T) {
	db := setupRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insertRule(t, db, enums.RuleWorkloadBalance, true)

	affected, err := repo.SetEnabled(ctx, enums.RuleWorkloadBalance, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rows, err := repo.FindByNames(ctx, []enums.AssignmentRuleName{enums.RuleWorkloadBalance})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Enabled)

	affected, err = repo.SetEnabled(ctx, enums.RuleRoundRobin, false)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestServiceEnabledMapLeavesUnstoredRulesNil(t *testing.T) {
	db := setupRulesTestDB(t)
	svc := NewService(NewRepository(db), nil)
	ctx := context.Background()

	insertRule(t, db, enums.RuleExpertiseMatch, false)

	toggles, err := svc.EnabledMap(ctx, enums.AllAssignmentRules)
	require.NoError(t, err)
	require.Len(t, toggles, len(enums.AllAssignmentRules))

	require.NotNil(t, toggles[enums.RuleExpertiseMatch])
	assert.False(t, *toggles[enums.RuleExpertiseMatch])

	assert.Nil(t, toggles[enums.RuleAgentStaffRelationship])
	assert.Nil(t, toggles[enums.RuleWorkloadBalance])
	assert.Nil(t, toggles[enums.RuleRoundRobin])
}

func TestServiceSetEnabled(t *testing.T) {
	db := setupRulesTestDB(t)
	svc := NewService(NewRepository(db), nil)
	ctx := context.Background()

	insertRule(t, db, enums.RuleRoundRobin, true)

	require.NoError(t, svc.SetEnabled(ctx, enums.RuleRoundRobin, false))

	err := svc.SetEnabled(ctx, enums.AssignmentRuleName("made-up"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown assignment rule")

	err = svc.SetEnabled(ctx, enums.RuleExpertiseMatch, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
