package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectRejectsBadURLs(t *testing.T) {
	_, err := Connect(context.Background(), "")
	require.Error(t, err)

	_, err = Connect(context.Background(), "http://not-redis")
	require.ErrorContains(t, err, "parse redis URL")
}
