// Package sheet holds the A1-notation and row-shaping helpers shared by every SheetGateway implementation.
package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
)

// Range is a parsed A1 reference such as Habits!A5:M5 or Habits!A:M.
// Columns and rows are 1-based; a zero row means the range is open.
type Range struct {
	Sheet    string
	StartCol int
	EndCol   int
	StartRow int
	EndRow   int
}

var cellRef = regexp.MustCompile(`^([A-Za-z]+)(\d*)$`)

// ParseRange parses "Sheet!A1:B2", "Sheet!A:M" or a bare sheet name.
func ParseRange(ref string) (Range, error) {
	name, cells, hasCells := cutSheet(ref)
	if name == "" {
		return Range{}, fmt.Errorf("range %q has no sheet name", ref)
	}
	r := Range{Sheet: name}
	if !hasCells {
		return r, nil
	}

	start, end, found := strings.Cut(cells, ":")
	if !found {
		end = start
	}

	var err error
	if r.StartCol, r.StartRow, err = parseCell(start); err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	if r.EndCol, r.EndRow, err = parseCell(end); err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	if r.EndCol < r.StartCol || (r.EndRow != 0 && r.EndRow < r.StartRow) {
		return Range{}, fmt.Errorf("invalid range %q: end before start", ref)
	}
	return r, nil
}

func cutSheet(ref string) (name, cells string, hasCells bool) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "'") {
		if idx := strings.Index(ref[1:], "'"); idx >= 0 {
			name = strings.ReplaceAll(ref[1:idx+1], "''", "'")
			rest := ref[idx+2:]
			if strings.HasPrefix(rest, "!") {
				return name, rest[1:], true
			}
			return name, "", false
		}
	}
	name, cells, hasCells = strings.Cut(ref, "!")
	return name, cells, hasCells
}

func parseCell(s string) (col, row int, err error) {
	m := cellRef.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("bad cell %q", s)
	}
	col = ColumnNumber(m[1])
	if m[2] != "" {
		row, err = strconv.Atoi(m[2])
		if err != nil || row < 1 {
			return 0, 0, fmt.Errorf("bad row in %q", s)
		}
	}
	return col, row, nil
}

// String formats the range back to A1 notation
func (r Range) String() string {
	name := quoteSheet(r.Sheet)
	if r.StartCol == 0 {
		return name
	}
	start := ColumnName(r.StartCol)
	end := ColumnName(r.EndCol)
	if r.StartRow > 0 {
		start += strconv.Itoa(r.StartRow)
	}
	if r.EndRow > 0 {
		end += strconv.Itoa(r.EndRow)
	}
	return name + "!" + start + ":" + end
}

// Width returns the number of columns covered
func (r Range) Width() int {
	if r.StartCol == 0 {
		return 0
	}
	return r.EndCol - r.StartCol + 1
}

func quoteSheet(name string) string {
	for _, c := range name {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}

// ColumnsRange returns the open range over the first width columns, e.g. Habits!A:M
func ColumnsRange(sheet string, width int) string {
	return Range{Sheet: sheet, StartCol: 1, EndCol: width}.String()
}

// RowRange returns the single-row range, e.g. Habits!A5:M5
func RowRange(sheet string, row, width int) string {
	return Range{Sheet: sheet, StartCol: 1, EndCol: width, StartRow: row, EndRow: row}.String()
}

// ColumnName converts 1 to A, 26 to Z, 27 to AA
func ColumnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

// ColumnNumber converts A to 1, AA to 27
func ColumnNumber(s string) int {
	n := 0
	for _, c := range strings.ToUpper(s) {
		n = n*26 + int(c-'A'+1)
	}
	return n
}

var (
	spaces      = regexp.MustCompile(`\s+`)
	underscored = regexp.MustCompile(`_([a-z])`)
)

// HeaderKey applies the header transform: lowercase, whitespace to "_", then "_x" to "X".
// "Habit ID" becomes "habitId" while "displayName" becomes "displayname".
func HeaderKey(header string) string {
	key := spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(header)), "_")
	return underscored.ReplaceAllStringFunc(key, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// IsBlank reports whether every cell is empty
func IsBlank(cells []any) bool {
	for _, c := range cells {
		if CellString(c) != "" {
			return false
		}
	}
	return true
}

// CellString renders a cell as text
func CellString(c any) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Records shapes a grid whose first row is the header into keyed rows.
// Blank rows are skipped but keep their physical numbering.
func Records(grid [][]any) []repository.Row {
	rows := make([]repository.Row, 0)
	if len(grid) == 0 {
		return rows
	}

	header := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		header[i] = HeaderKey(CellString(h))
	}

	for i, cells := range grid[1:] {
		if IsBlank(cells) {
			continue
		}
		values := make(map[string]any, len(header))
		for col, key := range header {
			if key == "" || col >= len(cells) {
				continue
			}
			if _, dup := values[key]; dup {
				continue
			}
			values[key] = cells[col]
		}
		rows = append(rows, repository.Row{Number: i + 2, Values: values})
	}
	return rows
}

// Strings converts string rows into any-typed cells
func Strings(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = c
		}
		out[i] = cells
	}
	return out
}
