package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storykit/pkg/period"
)

func TestStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    period.Period
		now  time.Time
		want time.Time
	}{
		{
			name: "lifetime uses epoch sentinel",
			p:    period.Lifetime,
			now:  time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
			want: period.Epoch,
		},
		{
			name: "monthly truncates to first of month",
			p:    period.Monthly,
			now:  time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
			want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "weekly on wednesday goes back to monday",
			p:    period.Weekly,
			now:  time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), // Wednesday
			want: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "weekly on sunday belongs to the previous monday",
			p:    period.Weekly,
			now:  time.Date(2025, 3, 16, 23, 59, 59, 0, time.UTC), // Sunday
			want: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "weekly on monday midnight is its own start",
			p:    period.Weekly,
			now:  time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "weekly crossing a month boundary",
			p:    period.Weekly,
			now:  time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC), // Wednesday
			want: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tt.want.Equal(period.Start(tt.p, tt.now)), "got %s", period.Start(tt.p, tt.now))
		})
	}
}

func TestStart_UsesLocationOfNow(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+10", 10*60*60)
	// Sunday 23:00 UTC is already Monday 09:00 in UTC+10.
	now := time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC).In(loc)

	start := period.Start(period.Weekly, now)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 17, start.Day())
	assert.Equal(t, loc, start.Location())
}

func TestEnd(t *testing.T) {
	t.Parallel()

	t.Run("lifetime is open ended", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, period.End(period.Lifetime, period.Epoch))
	})

	t.Run("monthly ends on the last instant of the month", func(t *testing.T) {
		t.Parallel()
		end := period.End(period.Monthly, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NotNil(t, end)
		assert.Equal(t, 29, end.Day())
		assert.Equal(t, time.February, end.Month())
		assert.Equal(t, 23, end.Hour())
		assert.True(t, end.Add(time.Nanosecond).Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("weekly ends six days later at end of day", func(t *testing.T) {
		t.Parallel()
		start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		end := period.End(period.Weekly, start)
		require.NotNil(t, end)
		assert.Equal(t, time.Sunday, end.Weekday())
		assert.Equal(t, 16, end.Day())
		assert.True(t, end.Add(time.Nanosecond).Equal(start.AddDate(0, 0, 7)))
	})
}

func TestWindowAt(t *testing.T) {
	t.Parallel()

	t.Run("two instants in the same week share a window", func(t *testing.T) {
		t.Parallel()
		a := period.WindowAt(period.Weekly, time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC))
		b := period.WindowAt(period.Weekly, time.Date(2025, 3, 16, 22, 0, 0, 0, time.UTC))
		assert.True(t, a.Start.Equal(b.Start))
	})

	t.Run("instants in different weeks do not", func(t *testing.T) {
		t.Parallel()
		a := period.WindowAt(period.Weekly, time.Date(2025, 3, 16, 22, 0, 0, 0, time.UTC))
		b := period.WindowAt(period.Weekly, time.Date(2025, 3, 17, 0, 0, 1, 0, time.UTC))
		assert.False(t, a.Start.Equal(b.Start))
	})
}

func TestNext(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC)
	assert.True(t, period.Next(period.Monthly, now).Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Next(period.Weekly, now).Equal(time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Next(period.Lifetime, now).IsZero())
}

func TestParse(t *testing.T) {
	t.Parallel()

	for _, p := range period.All {
		got, err := period.Parse(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := period.Parse("daily")
	assert.ErrorIs(t, err, period.ErrUnknownPeriod)

	var p period.Period
	assert.Error(t, p.UnmarshalText([]byte("yearly")))
	require.NoError(t, p.UnmarshalText([]byte("weekly")))
	assert.Equal(t, period.Weekly, p)
	assert.Equal(t, "week", p.Human())
	assert.Equal(t, "month", period.Monthly.Human())
}
