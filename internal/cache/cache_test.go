package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey_SortsParameters(t *testing.T) {
	key := Key("assets:list", map[string]string{
		"status":   "active",
		"pageSize": "100",
		"building": "1",
	})

	assert.Equal(t, "assets:list|building=1|pageSize=100|status=active", key)
}

func TestKey_NoParameters(t *testing.T) {
	assert.Equal(t, "stats:summary", Key("stats:summary", nil))
}

func TestKey_EscapesSeparators(t *testing.T) {
	forged := Key("assets:list", map[string]string{"building": "1|status=active"})
	honest := Key("assets:list", map[string]string{"building": "1", "status": "active"})

	assert.NotEqual(t, honest, forged)
}

func TestManager_SweepRemovesExpiredEntries(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	first := NewTTLCache[int](time.Minute, WithClock[int](clock.Now))
	second := NewTTLCache[int](time.Hour, WithClock[int](clock.Now))
	first.Set("a", 1)
	second.Set("b", 2)

	m := NewManager()
	m.Register(first)
	m.Register(second)

	clock.Advance(2 * time.Minute)

	assert.Equal(t, 2, m.Size())
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 0, first.Size())
	assert.Equal(t, 1, second.Size())
	assert.Equal(t, 1, m.Size())
}

func TestManager_StopWithoutStart(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, m.Stop)
}

func TestManager_StartAndStop(t *testing.T) {
	m := NewManager()
	m.Register(NewTTLCache[int](time.Millisecond))
	m.StartCleanup(time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	m.Stop()
}
