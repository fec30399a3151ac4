package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is advanced by hand so expiry can be tested deterministically.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestSetGetWithinTTL(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)}
	c := New(10*time.Minute, clk.now)

	c.Set("k", "v")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestExpiredEntryIsAMiss(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)}
	c := New(10*time.Minute, clk.now)

	c.Set("k", "v")
	clk.advance(11 * time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestInvalidateDropsEverything(t *testing.T) {
	c := New(time.Hour, nil)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate()

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestKeyIsStableAndDistinct(t *testing.T) {
	a := Key("BloombergHT", "https://www.bloomberght.com/rss", 30)
	b := Key("BloombergHT", "https://www.bloomberght.com/rss", 30)
	c := Key("BloombergHT", "https://www.bloomberght.com/rss", 10)
	d := Key("Bigpara", "https://www.bloomberght.com/rss", 30)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}

func TestMissOnUnknownKey(t *testing.T) {
	c := New(time.Hour, nil)
	_, ok := c.Get("yok")
	assert.False(t, ok)
}
