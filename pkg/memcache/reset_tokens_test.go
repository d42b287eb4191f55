package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConsumeIsSingleUse(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok-1", "alice@example.com", time.Minute)

	require.Equal(t, "alice@example.com", store.Consume("tok-1"))
	require.Equal(t, "", store.Consume("tok-1"))
}

func TestConsumeUnknownToken(t *testing.T) {
	store := NewResetTokens()
	require.Equal(t, "", store.Consume("never-issued"))
}

func TestExpiredTokenIsRejected(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok-1", "alice@example.com", -time.Second)

	require.Equal(t, "", store.Consume("tok-1"))
}

func TestSetSweepsExpiredEntries(t *testing.T) {
	store := NewResetTokens()
	store.Set("stale", "old@example.com", -time.Second)
	store.Set("fresh", "new@example.com", time.Minute)

	_, ok := store.data["stale"]
	require.False(t, ok)
	require.Equal(t, "new@example.com", store.Consume("fresh"))
}
