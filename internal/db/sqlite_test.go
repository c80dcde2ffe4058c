package db

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		mode       Mode
		wantTxLock bool
	}{
		{mode: ModeWrite, wantTxLock: true},
		{mode: ModeRead, wantTxLock: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			dsn := buildDSN("/tmp/groups.sqlite", tt.mode)

			assert.True(t, strings.HasPrefix(dsn, "/tmp/groups.sqlite?"))
			assert.Contains(t, dsn, "_journal_mode=WAL")
			assert.Contains(t, dsn, "_busy_timeout=5000")
			assert.Contains(t, dsn, "_synchronous=NORMAL")
			assert.Contains(t, dsn, "_foreign_keys=on")
			if tt.wantTxLock {
				assert.Contains(t, dsn, "_txlock=immediate")
			} else {
				assert.NotContains(t, dsn, "_txlock")
			}
		})
	}
}

func TestOpenSQLite_InvalidMode(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "x.db"), Mode("append"), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid SQLite mode")
}

func TestOpenSQLite_InvalidPath(t *testing.T) {
	_, err := OpenSQLite("/nonexistent/dir/x.db", ModeWrite, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping sqlite")

	_, err = OpenPools("/nonexistent/dir/x.db", 4)
	require.Error(t, err)
}

func TestOpenPools(t *testing.T) {
	pools, err := OpenPools(filepath.Join(t.TempDir(), "x.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pools.Close() })

	assert.Equal(t, 1, pools.Write.Stats().MaxOpenConnections)
	assert.Equal(t, 4, pools.Read.Stats().MaxOpenConnections)

	var journalMode string
	require.NoError(t, pools.Read.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", strings.ToLower(journalMode))

	var fk int
	require.NoError(t, pools.Write.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestRunMigrations(t *testing.T) {
	pools := OpenTestSQLite(t)
	ctx := context.Background()

	v, err := SchemaVersion(ctx, pools.Write)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	// Idempotent.
	require.NoError(t, RunMigrations(ctx, pools.Write))

	for _, table := range []string{"groups", "group_members", "audit_log"} {
		var name string
		err := pools.Read.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, table)
	}

	require.NoError(t, RollbackMigration(ctx, pools.Write))
	v, err = SchemaVersion(ctx, pools.Write)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestGroupNameUniqueIgnoresCase(t *testing.T) {
	pools := OpenTestSQLite(t)

	_, err := pools.Write.Exec("INSERT INTO groups (name, admin_id) VALUES ('Runners', 1)")
	require.NoError(t, err)

	_, err = pools.Write.Exec("INSERT INTO groups (name, admin_id) VALUES ('RUNNERS', 2)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestMembershipCascadesOnGroupDelete(t *testing.T) {
	pools := OpenTestSQLite(t)

	_, err := pools.Write.Exec("INSERT INTO groups (id, name, admin_id) VALUES (1, 'Runners', 1)")
	require.NoError(t, err)
	_, err = pools.Write.Exec("INSERT INTO group_members (group_id, user_id) VALUES (1, 1), (1, 2)")
	require.NoError(t, err)

	_, err = pools.Write.Exec("DELETE FROM groups WHERE id = 1")
	require.NoError(t, err)

	var n int
	require.NoError(t, pools.Read.QueryRow("SELECT COUNT(*) FROM group_members").Scan(&n))
	assert.Zero(t, n)
}

func TestPools_ConcurrentWritesAndReads(t *testing.T) {
	pools := OpenTestSQLite(t)

	_, err := pools.Write.Exec("INSERT INTO groups (id, name, admin_id) VALUES (1, 'Runners', 1)")
	require.NoError(t, err)

	var wg sync.WaitGroup
	writeErrs := make([]error, 20)
	readErrs := make([]error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			_, writeErrs[idx] = pools.Write.Exec(
				"INSERT INTO group_members (group_id, user_id) VALUES (1, ?)", idx+100)
		}(i)
		go func(idx int) {
			defer wg.Done()
			var n int
			readErrs[idx] = pools.Read.QueryRow("SELECT COUNT(*) FROM group_members").Scan(&n)
		}(i)
	}
	wg.Wait()

	for i := range writeErrs {
		assert.NoError(t, writeErrs[i], "writer %d", i)
		assert.NoError(t, readErrs[i], "reader %d", i)
	}

	var n int
	require.NoError(t, pools.Read.QueryRow("SELECT COUNT(*) FROM group_members").Scan(&n))
	assert.Equal(t, 20, n)
}
