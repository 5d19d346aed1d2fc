package deadline

import (
	"strings"
	"time"
)

// Cell is one category/offset intersection of a deadline table.
type Cell struct {
	Week       int
	Applicable bool
	Date       time.Time
}

// TableRow holds the cells of one category, one per global offset.
type TableRow struct {
	Category string
	Cells    []Cell
}

// Table is the category by offset grid of a schedule.
type Table struct {
	Start   time.Time
	Offsets []int
	Rows    []TableRow
}

// Table lays schedule out as a grid. Cells that do not apply to a category
// carry a zero Date.
func (e *Engine) Table(start time.Time, schedule Schedule) Table {
	t := Table{
		Start:   start,
		Offsets: e.Offsets(),
		Rows:    make([]TableRow, 0, len(e.categories)),
	}
	for _, category := range e.categories {
		row := TableRow{Category: category.Name, Cells: make([]Cell, 0, len(e.offsets))}
		for _, week := range e.offsets {
			cell := Cell{Week: week, Applicable: e.IsApplicable(category.Name, week)}
			if date, ok := schedule[week]; ok && cell.Applicable {
				cell.Date = date
			}
			row.Cells = append(row.Cells, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// TableFromString parses text as DD.MM.YYYY and lays out its deadlines.
// Blank text means today on the engine's clock.
func (e *Engine) TableFromString(text string) (Table, error) {
	if strings.TrimSpace(text) == "" {
		// Read the clock once so the start date and the schedule agree.
		now := e.now()
		frozen := *e
		frozen.now = func() time.Time { return now }
		return frozen.Table(frozen.Today(), frozen.DeadlinesFromNow()), nil
	}

	start, err := ParseStartDate(text)
	if err != nil {
		return Table{}, err
	}
	return e.Table(start, e.Deadlines(start)), nil
}
