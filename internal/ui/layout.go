package ui

// TableColumns picks how many columns the conversion table grid gets
// for a given terminal width, mirroring the responsive grid of the
// hosted experience.
func TableColumns(width int) int {
	switch {
	case width >= 110:
		return 6
	case width >= 70:
		return 3
	default:
		return 2
	}
}

// TableGrid lays lines out column-count wide, row-major, padding the
// last row with empty cells so every row has the same width.
func TableGrid(lines []string, cols int) [][]string {
	if cols < 1 {
		cols = 1
	}
	rows := make([][]string, 0, (len(lines)+cols-1)/cols)
	for i := 0; i < len(lines); i += cols {
		row := make([]string, cols)
		for j := 0; j < cols; j++ {
			if i+j < len(lines) {
				row[j] = lines[i+j]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
