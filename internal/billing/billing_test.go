package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDuration(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("whole seconds", func(t *testing.T) {
		d, err := ComputeDuration(start, start.Add(30*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(1800), d)
	})

	t.Run("truncates sub-second remainder", func(t *testing.T) {
		d, err := ComputeDuration(start, start.Add(5*time.Second+900*time.Millisecond))
		require.NoError(t, err)
		assert.Equal(t, int64(5), d)
	})

	t.Run("end equal to start fails", func(t *testing.T) {
		_, err := ComputeDuration(start, start)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("end before start fails", func(t *testing.T) {
		_, err := ComputeDuration(start, start.Add(-time.Minute))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestComputeEarnings(t *testing.T) {
	cases := []struct {
		name     string
		seconds  int64
		rate     float64
		expected float64
	}{
		{"one hour", 3600, 50, 50},
		{"half hour", 1800, 60, 30},
		{"one second", 1, 3600, 1},
		{"zero duration", 0, 100, 0},
		{"uneven division keeps precision", 1000, 90, 1000.0 / 3600 * 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeEarnings(tc.seconds, tc.rate))
		})
	}
}

func TestNewTimeBlock(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("populates all fields", func(t *testing.T) {
		block, err := NewTimeBlock(start, end, 75)
		require.NoError(t, err)
		assert.NotEmpty(t, block.ID)
		assert.Equal(t, start, block.StartTime)
		assert.Equal(t, end, block.EndTime)
		assert.Equal(t, int64(3600), block.Duration)
		assert.Equal(t, 75.0, block.Rate)
		assert.Equal(t, 75.0, block.Earnings)
	})

	t.Run("ids are unique", func(t *testing.T) {
		a, err := NewTimeBlock(start, end, 10)
		require.NoError(t, err)
		b, err := NewTimeBlock(start, end, 10)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("rejects empty interval", func(t *testing.T) {
		_, err := NewTimeBlock(start, start, 75)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "00:00:59", FormatClock(59))
	assert.Equal(t, "00:30:00", FormatClock(1800))
	assert.Equal(t, "01:01:01", FormatClock(3661))
	assert.Equal(t, "27:46:40", FormatClock(100000))
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "0m", FormatCompact(0))
	assert.Equal(t, "5m", FormatCompact(300))
	assert.Equal(t, "59m", FormatCompact(3599))
	assert.Equal(t, "2h 5m", FormatCompact(7500))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "$30.00", FormatMoney(30))
	assert.Equal(t, "$12.35", FormatMoney(12.349))
}
