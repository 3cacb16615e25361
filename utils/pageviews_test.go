package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageViewsAggregatesPerDay(t *testing.T) {
	day := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	pv := NewPageViews()
	pv.now = func() time.Time { return day }

	pv.Record("/")
	pv.Record("/")
	pv.Record("/projects")
	assert.Equal(t, int64(3), pv.Today())

	day = day.Add(24 * time.Hour)
	pv.Record("/")
	assert.Equal(t, int64(1), pv.Today())

	snap := pv.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "/", snap[0].Path)
	assert.Equal(t, int64(2), snap[0].Count)
	assert.Equal(t, "/projects", snap[1].Path)
	assert.Equal(t, int64(1), snap[2].Count)
}

func TestNilCacheAlwaysMisses(t *testing.T) {
	c := NewCache(nil)
	assert.False(t, c.Enabled())
	c.SetJSON(context.Background(), "k", map[string]int{"a": 1}, 0)
	_, ok := c.GetBytes(context.Background(), "k")
	assert.False(t, ok)
	c.InvalidateByPrefix(context.Background(), "k")
}
