package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListeners(t *testing.T) {
	var l Listeners[func() string]
	a := l.Add(func() string { return "a" })
	b := l.Add(func() string { return "b" })
	c := l.Add(func() string { return "c" })
	assert.NotEqual(t, a, b)
	assert.Equal(t, 3, l.Len())

	assert.True(t, l.Remove(b))
	assert.False(t, l.Remove(b))
	assert.False(t, l.Remove(0))

	var got []string
	for _, fn := range l.Snapshot() {
		got = append(got, fn())
	}
	assert.Equal(t, []string{"a", "c"}, got)

	// a snapshot is unaffected by later removals
	snap := l.Snapshot()
	l.Remove(a)
	l.Remove(c)
	assert.Len(t, snap, 2)
	assert.Zero(t, l.Len())

	// handles are never reused
	d := l.Add(func() string { return "d" })
	assert.Greater(t, d, c)
	l.Clear()
	assert.Zero(t, l.Len())
}
