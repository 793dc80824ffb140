package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := Options{}.resolver("test")
	fallback := func() string { return "fallback" }

	t.Run("primary result", func(t *testing.T) {
		got, origin := Resolve(context.Background(), r, "ok", func(context.Context) (string, error) {
			return "model", nil
		}, fallback)
		assert.Equal(t, "model", got)
		assert.Equal(t, OriginModel, origin)
	})

	t.Run("primary error", func(t *testing.T) {
		got, origin := Resolve(context.Background(), r, "err", func(context.Context) (string, error) {
			return "partial", errors.New("boom")
		}, fallback)
		assert.Equal(t, "fallback", got)
		assert.Equal(t, OriginFallback, origin)
	})

	t.Run("primary panic", func(t *testing.T) {
		got, origin := Resolve(context.Background(), r, "panic", func(context.Context) (string, error) {
			var m map[string]int
			m["x"] = 1
			return "unreachable", nil
		}, fallback)
		assert.Equal(t, "fallback", got)
		assert.Equal(t, OriginFallback, origin)
	})
}

func TestResolveTimeout(t *testing.T) {
	r := Options{Timeout: 20 * time.Millisecond}.resolver("test")

	start := time.Now()
	got, origin := Resolve(context.Background(), r, "slow", func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}, func() int { return 7 })

	assert.Equal(t, 7, got)
	assert.Equal(t, OriginFallback, origin)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAsk(t *testing.T) {
	_, err := Options{}.resolver("test").Ask(context.Background(), "hi")
	require.ErrorIs(t, err, errNoGenerator)

	_, err = reply("   ").resolver("test").Ask(context.Background(), "hi")
	require.ErrorIs(t, err, errEmptyReply)

	got, err := reply("hello").resolver("test").Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}
