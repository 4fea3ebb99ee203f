package layout

import (
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var central = domain.Zone{OffsetHours: -6}

func grid(t *testing.T, freq domain.Frequency, count int, first time.Time) []domain.Period {
	t.Helper()
	periods, err := period.Build(period.Request{Zone: central, Frequency: freq, Count: count, DataFirst: first})
	require.NoError(t, err)
	return periods
}

func TestRegistry_SharedIdentity(t *testing.T) {
	first := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	later := time.Date(2024, 1, 16, 14, 0, 0, 0, time.UTC)

	a, ok := NewKey(24, grid(t, domain.TwentyFourHour, 7, first), central)
	require.True(t, ok)
	b, _ := NewKey(24, grid(t, domain.TwentyFourHour, 7, first.Add(3*time.Hour)), central)
	c, _ := NewKey(24, grid(t, domain.TwentyFourHour, 7, later), central)
	d, _ := NewKey(24, grid(t, domain.TwentyFourHour, 6, first), central)

	reg := NewRegistry()
	la, lb, lc, ld := reg.Resolve(a), reg.Resolve(b), reg.Resolve(c), reg.Resolve(d)

	assert.Equal(t, "2024-01-15T06:00:00-06:00", a.Start)
	assert.Equal(t, la, lb, "same length, rows and start")
	assert.Equal(t, "k-p24h-n7-1", la.Name)
	assert.Equal(t, 2, lc.ID, "different start")
	assert.Equal(t, "k-p24h-n6-3", ld.Name, "different row count")
	assert.Len(t, reg.Layouts(), 3)
}

func TestRegistry_Scoped(t *testing.T) {
	k := Key{PeriodHours: 12, Rows: 4, Start: "2024-01-15T06:00:00-06:00"}
	NewRegistry().Resolve(Key{PeriodHours: 24, Rows: 1, Start: "x"})
	assert.Equal(t, 1, NewRegistry().Resolve(k).ID, "a new registry starts over")
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := NewRegistry()
	keys := []Key{
		{PeriodHours: 12, Rows: 14, Start: "a"},
		{PeriodHours: 24, Rows: 7, Start: "a"},
		{PeriodHours: 12, Rows: 14, Start: "b"},
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, k := range keys {
				reg.Resolve(k)
			}
		}()
	}
	wg.Wait()

	layouts := reg.Layouts()
	require.Len(t, layouts, 3)
	for i, l := range layouts {
		assert.Equal(t, i+1, l.ID)
		assert.Equal(t, l, reg.Resolve(l.Key))
	}
}

func TestNewKey_Empty(t *testing.T) {
	_, ok := NewKey(12, nil, central)
	assert.False(t, ok)
}

func TestElementPeriods(t *testing.T) {
	first := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	twelve := grid(t, domain.TwelveHour, 5, first)

	tests := []struct {
		kind  domain.ElementKind
		rows  int
		hours int
		night bool
	}{
		{kind: domain.MaxTemp, rows: 3, hours: 24, night: false},
		{kind: domain.MinTemp, rows: 2, hours: 24, night: true},
		{kind: domain.Pop12, rows: 5, hours: 12},
		{kind: domain.SkyCover, rows: 5, hours: 12},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, hours := ElementPeriods(tt.kind, twelve, central)
			assert.Equal(t, tt.hours, hours)
			require.Len(t, got, tt.rows)
			for i, p := range got {
				assert.Equal(t, i, p.Index)
				if tt.kind == domain.MaxTemp || tt.kind == domain.MinTemp {
					assert.Equal(t, tt.night, p.Night)
				}
			}
		})
	}

	t.Run("pop12 on a daily grid", func(t *testing.T) {
		daily := grid(t, domain.TwentyFourHour, 2, first)
		got, hours := ElementPeriods(domain.Pop12, daily, central)
		assert.Equal(t, 12, hours)
		require.Len(t, got, 4)
		assert.Equal(t, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), got[0].Start)
		assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), got[1].Start)
		assert.True(t, got[1].Night)
		assert.Equal(t, daily[1].Start, got[2].Start)
		assert.Equal(t, daily[1].End, got[3].End)
	})

	t.Run("does not touch the request grid", func(t *testing.T) {
		ElementPeriods(domain.MinTemp, twelve, central)
		for i, p := range twelve {
			assert.Equal(t, i, p.Index)
		}
	})
}
