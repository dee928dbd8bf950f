package database

import "testing"

func TestMigrationVersionsAscending(t *testing.T) {
	t.Parallel()

	versions := migrationVersions()
	if len(versions) != len(migrations) {
		t.Fatalf("got %d versions, want %d", len(versions), len(migrations))
	}
	for i, version := range versions {
		if _, ok := migrations[version]; !ok {
			t.Errorf("version %d is not a known migration", version)
		}
		if i > 0 && version <= versions[i-1] {
			t.Errorf("version %d listed after %d", version, versions[i-1])
		}
	}
	if versions[0] != 1 {
		t.Errorf("first version = %d, want 1", versions[0])
	}
}
