package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("migration dir failed validation: %v", err)
	}
}

func TestAssignmentMigrationSeedsAllRules(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}

	var assignmentSQL string
	for _, e := range entries {
		if strings.Contains(e.Name(), "assignment_tables") {
			b, err := os.ReadFile(filepath.Join("migrations", e.Name()))
			if err != nil {
				t.Fatalf("read migration: %v", err)
			}
			assignmentSQL = string(b)
		}
	}
	if assignmentSQL == "" {
		t.Fatal("assignment_tables migration not found")
	}

	for _, rule := range []string{"expertise-match", "agent-staff-relationship", "workload-balance", "round-robin"} {
		if !strings.Contains(assignmentSQL, rule) {
			t.Fatalf("assignment migration missing seed for rule %q", rule)
		}
	}
}
