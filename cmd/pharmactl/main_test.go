package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_URL", "")
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestPostgresCommandsRequireDSN(t *testing.T) {
	for _, name := range []string{"migrate", "purge-sessions"} {
		t.Run(name, func(t *testing.T) {
			err := execute(t, name)
			require.ErrorIs(t, err, errNoDSN)
		})
	}
}

func TestSeedMissingFile(t *testing.T) {
	err := execute(t, "seed", "--file", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}
