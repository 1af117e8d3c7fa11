package stats_test

import (
	"testing"

	"github.com/SergeiKhy/url-stats/internal/stats"
	"github.com/stretchr/testify/assert"
)

func TestEarliestLatest(t *testing.T) {
	dates := []string{"2024-01-15", "2024-01-01T10:00:00Z", "2024-02-01", "2024-01-20"}

	earliest, ok := stats.Earliest(dates)
	assert.True(t, ok)
	assert.Equal(t, "2024-01-01T10:00:00Z", earliest)

	latest, ok := stats.Latest(dates)
	assert.True(t, ok)
	assert.Equal(t, "2024-02-01", latest)
}

func TestEarliestLatest_Empty(t *testing.T) {
	_, ok := stats.Earliest(nil)
	assert.False(t, ok)

	_, ok = stats.Latest([]string{})
	assert.False(t, ok)
}

func TestEarliestLatest_SingleElement(t *testing.T) {
	dates := []string{"2024-01-15T10:00:00.000Z"}

	earliest, _ := stats.Earliest(dates)
	latest, _ := stats.Latest(dates)

	assert.Equal(t, dates[0], earliest)
	assert.Equal(t, dates[0], latest)
}

func TestEarliestLatest_TieKeepsFirst(t *testing.T) {
	// Один и тот же момент в разных записях
	dates := []string{"2024-01-15T00:00:00Z", "2024-01-15", "2024-01-15T02:00:00+02:00"}

	earliest, _ := stats.Earliest(dates)
	latest, _ := stats.Latest(dates)

	assert.Equal(t, "2024-01-15T00:00:00Z", earliest)
	assert.Equal(t, "2024-01-15T00:00:00Z", latest)
}

func TestEarliestLatest_ReturnsOriginalString(t *testing.T) {
	dates := []string{"2024-03-01 08:00:00", "2024-01-01T12:00"}

	earliest, _ := stats.Earliest(dates)
	assert.Equal(t, "2024-01-01T12:00", earliest)
}

func TestEarliestLatest_InvalidEntriesNeverWin(t *testing.T) {
	dates := []string{"garbage", "2024-01-15", "nope", "2024-01-10"}

	earliest, _ := stats.Earliest(dates)
	latest, _ := stats.Latest(dates)

	assert.Equal(t, "2024-01-10", earliest)
	assert.Equal(t, "2024-01-15", latest)
}

func TestEarliestLatest_AllInvalid(t *testing.T) {
	dates := []string{"garbage", "nope"}

	earliest, ok := stats.Earliest(dates)
	assert.True(t, ok)
	assert.Equal(t, "garbage", earliest)

	latest, ok := stats.Latest(dates)
	assert.True(t, ok)
	assert.Equal(t, "garbage", latest)
}
