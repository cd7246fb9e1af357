package calendar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zerodex/errs"
)

func testWeekRegions() map[string]WeekData {
	return map[string]WeekData{
		"001": {FirstWeekday: Monday, MinWeekDays: 1},
		"US":  {FirstWeekday: Sunday, MinWeekDays: 1},
		"DE":  {FirstWeekday: Monday, MinWeekDays: 4},
		"SA":  {FirstWeekday: Sunday, MinWeekDays: 1},
	}
}

func TestBuildWeekDataMap(t *testing.T) {
	sealed, err := BuildWeekDataMap(testWeekRegions())
	require.NoError(t, err)

	m, err := LoadWeekDataMap(sealed)
	require.NoError(t, err)
	require.Equal(t, 4, m.Len())
}

func TestBuildWeekDataMap_InvalidDomain(t *testing.T) {
	t.Run("Weekday out of range", func(t *testing.T) {
		_, err := BuildWeekDataMap(map[string]WeekData{
			"XX": {FirstWeekday: Weekday(8), MinWeekDays: 1},
		})
		require.ErrorIs(t, err, errs.ErrFieldOutOfRange)
	})

	t.Run("MinWeekDays out of range", func(t *testing.T) {
		_, err := BuildWeekDataMap(map[string]WeekData{
			"XX": {FirstWeekday: Monday, MinWeekDays: 0},
		})
		require.ErrorIs(t, err, errs.ErrFieldOutOfRange)
	})
}

func TestWeekDataMap_Get(t *testing.T) {
	sealed, err := BuildWeekDataMap(testWeekRegions())
	require.NoError(t, err)
	m, err := LoadWeekDataMap(sealed)
	require.NoError(t, err)

	wd, ok := m.Get("DE")
	require.True(t, ok)
	require.Equal(t, WeekData{FirstWeekday: Monday, MinWeekDays: 4}, wd)

	wd, ok = m.Get("US")
	require.True(t, ok)
	require.Equal(t, Sunday, wd.FirstWeekday)

	_, ok = m.Get("ZZ")
	require.False(t, ok)

	require.True(t, m.ContainsRegion("001"))
	require.False(t, m.ContainsRegion("0"))
}

func TestWeekDataMap_All(t *testing.T) {
	sealed, err := BuildWeekDataMap(testWeekRegions())
	require.NoError(t, err)
	m, err := LoadWeekDataMap(sealed)
	require.NoError(t, err)

	var regions []string
	for region, wd := range m.All() {
		regions = append(regions, region)
		require.GreaterOrEqual(t, wd.MinWeekDays, uint8(1))
	}
	// Ascending byte-wise region order.
	require.Equal(t, []string{"001", "DE", "SA", "US"}, regions)
}

func TestWeekday_String(t *testing.T) {
	require.Equal(t, "Monday", Monday.String())
	require.Equal(t, "Sunday", Sunday.String())
	require.Equal(t, "Unknown", Weekday(0).String())
}
