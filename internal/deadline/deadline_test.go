package deadline

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDefaultCatalog(t *testing.T) {
	e := Default()

	categories := e.Categories()
	require.Len(t, categories, 8)
	assert.Equal(t, "İş Hukuku Uyuşmazlıkları", categories[0].Name)
	assert.Equal(t, "Tarımsal Üretim Sözleşmesinden Kaynaklanan Uyuşmazlıklar", categories[7].Name)
	assert.Equal(t, []int{2, 3, 4}, categories[7].Weeks)
	assert.Equal(t, []int{6, 8}, categories[1].Weeks)

	assert.Equal(t, []int{2, 3, 4, 6, 8}, e.Offsets())
}

func TestOffsetsAreSortedUnion(t *testing.T) {
	e := Default()
	offsets := e.Offsets()

	assert.True(t, sort.IntsAreSorted(offsets))
	for i := 1; i < len(offsets); i++ {
		assert.Less(t, offsets[i-1], offsets[i], "offsets must be strictly ascending")
	}

	union := make(map[int]bool)
	for _, category := range e.Categories() {
		for _, week := range category.Weeks {
			union[week] = true
		}
	}
	assert.Len(t, offsets, len(union))
	for _, week := range offsets {
		assert.True(t, union[week])
	}
}

func TestDeadlines(t *testing.T) {
	e := Default()
	start := date(2025, time.January, 15)

	schedule := e.Deadlines(start)
	require.Len(t, schedule, len(e.Offsets()))
	for _, week := range e.Offsets() {
		assert.Equal(t, start.AddDate(0, 0, 7*week), schedule[week])
	}

	assert.Equal(t, date(2025, time.January, 29), schedule[2])
	assert.Equal(t, date(2025, time.February, 5), schedule[3])
	assert.Equal(t, date(2025, time.March, 12), schedule[8])

	assert.Equal(t, schedule, e.Deadlines(start), "deadlines must be idempotent")
}

func TestDeadlinesCrossYearAndLeapDay(t *testing.T) {
	e := Default()

	schedule := e.Deadlines(date(2023, time.December, 20))
	assert.Equal(t, date(2024, time.January, 3), schedule[2])

	schedule = e.Deadlines(date(2024, time.February, 15))
	assert.Equal(t, date(2024, time.February, 29), schedule[2])
}

func TestDeadlinesFromString(t *testing.T) {
	e := Default()

	schedule, err := e.DeadlinesFromString("01.03.2025")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 22), schedule[3])

	invalid := []string{"", "1.3.2025", "2025-03-01", "32.01.2025", "01.13.2025", "01.03.25", "01.03.2025 ", "abc"}
	for _, input := range invalid {
		t.Run(input, func(t *testing.T) {
			schedule, err := e.DeadlinesFromString(input)
			require.Error(t, err)
			assert.Nil(t, schedule)

			var dateErr *InvalidDateFormatError
			require.True(t, errors.As(err, &dateErr))
			assert.Equal(t, input, dateErr.Input)
			assert.True(t, errors.Is(err, ErrInvalidDateFormat))
		})
	}
}

func TestDeadlinesFromNow(t *testing.T) {
	fixed := time.Date(2026, time.October, 17, 15, 30, 0, 0, time.UTC)
	e := Default(WithClock(func() time.Time { return fixed }))

	assert.Equal(t, date(2026, time.October, 17), e.Today())

	schedule := e.DeadlinesFromNow()
	assert.Equal(t, date(2026, time.October, 31), schedule[2])
	assert.Equal(t, date(2026, time.December, 12), schedule[8])
}

func TestIsApplicable(t *testing.T) {
	e := Default()

	for _, category := range DefaultCategories() {
		for week := 0; week <= 10; week++ {
			assert.Equal(t, category.Applies(week), e.IsApplicable(category.Name, week),
				"%s week %d", category.Name, week)
		}
	}

	assert.True(t, e.IsApplicable("Ticaret Hukuku Uyuşmazlıkları", 6))
	assert.False(t, e.IsApplicable("Ticaret Hukuku Uyuşmazlıkları", 3))
	assert.True(t, e.IsApplicable("Tarımsal Üretim Sözleşmesinden Kaynaklanan Uyuşmazlıklar", 2))
	assert.False(t, e.IsApplicable("İş Hukuku Uyuşmazlıkları", 2))
	assert.False(t, e.IsApplicable("Unknown", 3))
	assert.False(t, e.IsApplicable("iş hukuku uyuşmazlıkları", 3), "names match exactly")
}

func TestNewEngineValidation(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
	}{
		{"empty catalog", nil},
		{"empty name", []Category{{Name: " ", Weeks: []int{1}}}},
		{"duplicate name", []Category{{Name: "A", Weeks: []int{1}}, {Name: "A", Weeks: []int{2}}}},
		{"no weeks", []Category{{Name: "A"}}},
		{"zero week", []Category{{Name: "A", Weeks: []int{0}}}},
		{"negative week", []Category{{Name: "A", Weeks: []int{2, -1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.categories)
			assert.Error(t, err)
			assert.Nil(t, e)
		})
	}
}

func TestCustomCatalogDuplicatesWeeks(t *testing.T) {
	e, err := NewEngine([]Category{
		{Name: "A", Weeks: []int{5, 1, 5}},
		{Name: "B", Weeks: []int{3, 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, e.Offsets())
	assert.Len(t, e.Deadlines(date(2025, time.June, 1)), 3)
}

func TestEngineIsImmutable(t *testing.T) {
	input := []Category{{Name: "A", Weeks: []int{1, 2}}}
	e, err := NewEngine(input)
	require.NoError(t, err)

	input[0].Weeks[0] = 99
	categories := e.Categories()
	categories[0].Weeks[1] = 77
	offsets := e.Offsets()
	offsets[0] = 55

	assert.Equal(t, []int{1, 2}, e.Categories()[0].Weeks)
	assert.Equal(t, []int{1, 2}, e.Offsets())
	assert.True(t, e.IsApplicable("A", 1))
	assert.False(t, e.IsApplicable("A", 99))
}

func TestTable(t *testing.T) {
	e := Default()
	start := date(2025, time.January, 15)
	table := e.Table(start, e.Deadlines(start))

	assert.Equal(t, start, table.Start)
	assert.Equal(t, []int{2, 3, 4, 6, 8}, table.Offsets)
	require.Len(t, table.Rows, 8)

	commercial := table.Rows[1]
	assert.Equal(t, "Ticaret Hukuku Uyuşmazlıkları", commercial.Category)
	require.Len(t, commercial.Cells, 5)
	for _, cell := range commercial.Cells {
		applicable := cell.Week == 6 || cell.Week == 8
		assert.Equal(t, applicable, cell.Applicable, "week %d", cell.Week)
		if applicable {
			assert.Equal(t, start.AddDate(0, 0, 7*cell.Week), cell.Date)
		} else {
			assert.True(t, cell.Date.IsZero())
		}
	}

	agricultural := table.Rows[7]
	assert.True(t, agricultural.Cells[0].Applicable)
	assert.Equal(t, date(2025, time.January, 29), agricultural.Cells[0].Date)
}

func TestTableFromString(t *testing.T) {
	calls := 0
	clock := func() time.Time {
		calls++
		return time.Date(2025, time.January, 15, 23, 59, 59, 0, time.UTC)
	}
	e := Default(WithClock(clock))

	table, err := e.TableFromString("  ")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, date(2025, time.January, 15), table.Start)
	assert.Equal(t, date(2025, time.January, 29), table.Rows[7].Cells[0].Date)

	table, err = e.TableFromString("01.03.2024")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, date(2024, time.March, 1), table.Start)
	assert.Equal(t, date(2024, time.March, 22), table.Rows[0].Cells[1].Date)

	_, err = e.TableFromString("2024-03-01")
	assert.True(t, errors.Is(err, ErrInvalidDateFormat))
}
