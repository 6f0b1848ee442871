package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeExpr(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2h", now.Add(-2 * time.Hour)},
		{"3d", time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)},
		{"2w", time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)},
		{"1mo", time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC)},
		{"2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2024-01-02T03:04", time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)},
		{"2024-01-02T03:04:05Z", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeExpr(tt.in, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}

	for _, bad := range []string{"", "xd", "-1d", "yesterday"} {
		_, err := ParseTimeExpr(bad, now)
		assert.Error(t, err, bad)
	}
}

func TestTimeRange(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	s, u, err := TimeRange("1d", "3d", now)
	require.NoError(t, err)
	assert.True(t, s.Before(u))

	s, u, err = TimeRange("", "", now)
	require.NoError(t, err)
	assert.True(t, s.IsZero() && u.IsZero())

	_, _, err = TimeRange("nope", "", now)
	assert.ErrorContains(t, err, "invalid --since")
}
