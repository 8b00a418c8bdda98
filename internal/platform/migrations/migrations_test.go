package migrations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTablesCoverEveryStore(t *testing.T) {
	require.Equal(t, []string{"medicines", "orders", "order_idempotency_keys", "users", "user_sessions"}, Tables())
}

func TestNilDatabaseIsANoop(t *testing.T) {
	require.NoError(t, Run(nil))
	require.NoError(t, Reset(nil))
}
