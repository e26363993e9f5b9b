// Package render turns result sets into terminal output. It is a
// collaborator of the core, not part of it: the core only ever returns
// rows, and this package decides how they look.
package render

import (
	"fmt"

	"github.com/pterm/pterm"

	"flightdb/internal/storage"
)

// Table renders a result set as a boxed grid with the column names as
// header. An empty result renders as a short notice instead of an
// empty grid.
func Table(rows *storage.Rows) string {
	if rows.Empty() {
		return pterm.Gray("(no rows)")
	}

	data := make(pterm.TableData, 0, len(rows.Values)+1)
	data = append(data, rows.Columns)
	for _, row := range rows.Values {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = cell(v)
		}
		data = append(data, line)
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		// Srender only fails on impossible terminal states; fall back
		// to something readable.
		return fmt.Sprintf("%v", rows.Values)
	}
	return out
}

func cell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
