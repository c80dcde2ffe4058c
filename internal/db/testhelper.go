package db

import (
	"context"
	"path/filepath"
	"testing"
)

// OpenTestSQLite opens a migrated write/read pool pair under t.TempDir()
// and closes it when the test ends.
func OpenTestSQLite(t *testing.T) *Pools {
	t.Helper()

	pools, err := OpenPools(filepath.Join(t.TempDir(), "groups.sqlite"), 4)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() { _ = pools.Close() })

	if err := RunMigrations(context.Background(), pools.Write); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return pools
}
