package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ")
	require.EqualError(t, err, "postgres DSN is empty")

	_, cleanup, err := ConnectWithCleanup(context.Background(), "", nil)
	require.Error(t, err)
	cleanup()
}
