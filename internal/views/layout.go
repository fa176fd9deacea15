package views

// BoardTop is the screen row of the columns' top border: the title and
// navigation lines sit above it.
const BoardTop = 2

// Lines inside a column before the first task: header and rule.
const columnPreamble = 2

func ColumnOuterWidth(width int) int {
	return width + 2
}

// Hit is a board position under the pointer. Row counts task slots and may
// be past the last task of the column.
type Hit struct {
	Column int
	Row    int
}

// HitTest maps a terminal cell to a board slot. Header and rule cells map to
// row 0; borders and anything outside the board are misses.
func HitTest(x, y, width, rows, columns int) (Hit, bool) {
	outer := ColumnOuterWidth(width)
	if x < 0 || outer <= 0 || x >= outer*columns {
		return Hit{}, false
	}
	col := x / outer
	offset := x % outer
	if offset == 0 || offset == outer-1 {
		return Hit{}, false
	}
	first := BoardTop + 1
	last := BoardTop + columnPreamble + rows
	if y < first || y > last {
		return Hit{}, false
	}
	row := y - (first + columnPreamble)
	if row < 0 {
		row = 0
	}
	return Hit{Column: col, Row: row}, true
}
