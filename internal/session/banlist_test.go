package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanListWithoutRedis(t *testing.T) {
	ctx := context.Background()
	b := NewBanList(nil)

	assert.False(t, b.Enabled())
	b.Ban(ctx, "u-1")
	b.Unban(ctx, "u-1")

	assert.NoError(t, b.Reset(ctx, []string{"u-2"}))

	banned, known := b.IsBanned(ctx, "u-1")
	assert.False(t, banned)
	assert.False(t, known)
}

func TestConnectEmptyURLDisablesRedis(t *testing.T) {
	rdb, err := Connect(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-url://")
	assert.Error(t, err)
}
