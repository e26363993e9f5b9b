// Package query builds the SQL text for the fixed operation set. The
// builders are stateless: structural inputs (table and column names,
// condition text) must already be validated against the live schema by
// the caller, values are either parameter-bound or pass through literal
// formatting, and the result is a Statement ready for the executor.
package query

import (
	"errors"
	"fmt"
	"strings"

	"flightdb/internal/domain"
)

// ErrValidation marks caller input rejected before any SQL was built:
// an unknown column, an unrecognized grouping mode, or an empty
// attribute set.
var ErrValidation = errors.New("validation failed")

// Statement is one executable statement with its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// GroupMode selects the grouping axis for the flight summary aggregate.
type GroupMode string

const (
	GroupByPilot       GroupMode = "pilot"
	GroupBySource      GroupMode = "source"
	GroupByDestination GroupMode = "destination"
)

// ParseGroupMode maps user input onto a GroupMode, case-insensitively.
func ParseGroupMode(s string) (GroupMode, error) {
	switch GroupMode(strings.ToLower(strings.TrimSpace(s))) {
	case GroupByPilot:
		return GroupByPilot, nil
	case GroupBySource:
		return GroupBySource, nil
	case GroupByDestination:
		return GroupByDestination, nil
	}
	return "", fmt.Errorf("%w: unknown grouping mode %q", ErrValidation, s)
}

// Insert builds a fully bound insert from a record's column/value
// projection. Values are always parameters, never interpolated.
func Insert(table string, columns []string, values []any) (Statement, error) {
	if len(columns) == 0 {
		return Statement{}, fmt.Errorf("%w: empty attribute set", ErrValidation)
	}
	if len(columns) != len(values) {
		return Statement{}, fmt.Errorf("%w: %d columns for %d values", ErrValidation, len(columns), len(values))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	return Statement{
		SQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table, strings.Join(columns, ","), placeholders),
		Args: values,
	}, nil
}

// SelectAll builds an unconditional select over a table.
func SelectAll(table string) Statement {
	return Statement{SQL: fmt.Sprintf("SELECT * FROM %s WHERE 1=1", table)}
}

// SelectByID builds an identity-match select.
func SelectByID(table string, id int64) Statement {
	return Statement{SQL: fmt.Sprintf("SELECT * FROM %s WHERE id = %d", table, id)}
}

// SelectLastInserted builds an identity-match select whose id is the
// table's current maximum, fetching the most recently inserted row.
func SelectLastInserted(table string) Statement {
	return Statement{SQL: fmt.Sprintf("SELECT * FROM %s WHERE id = (SELECT MAX(id) FROM %s)", table, table)}
}

// SelectWhere builds a single-column equality select. The column must
// already be validated against the live column set; the value is
// interpolated as a coerced literal rather than bound. Known weakness:
// upstream column validation and numeric coercion are the only guards
// here. Binding the value would be safer but is a deliberate non-change,
// kept consistent with the free-form condition in FlightSummary.
func SelectWhere(table, column string, value any) Statement {
	return Statement{SQL: fmt.Sprintf("SELECT * FROM %s WHERE %s = %s", table, column, formatLiteral(value))}
}

// UpdateByID sets one column on one row, both value and id bound.
func UpdateByID(table, column string, value any, id int64) Statement {
	return Statement{
		SQL:  fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", table, column),
		Args: []any{value, id},
	}
}

// DeleteByID removes one row by bound identity.
func DeleteByID(table string, id int64) Statement {
	return Statement{
		SQL:  fmt.Sprintf("DELETE FROM %s WHERE id = ?", table),
		Args: []any{id},
	}
}

// GroupCount counts rows per distinct value of one column.
func GroupCount(table, column string) Statement {
	return Statement{
		SQL: fmt.Sprintf("SELECT %s, COUNT(*) AS count FROM %s GROUP BY %s", column, table, column),
	}
}

// summaryAxis is one row of the fixed grouping-mode table: the entity
// to group by, the label column projected for it, and the Flights
// foreign key joined on.
type summaryAxis struct {
	table   string
	label   string
	joinKey string
}

var summaryAxes = map[GroupMode]summaryAxis{
	GroupByPilot:       {table: domain.TablePilots, label: "name", joinKey: "pilot_id"},
	GroupBySource:      {table: domain.TableDestinations, label: "city", joinKey: "source_id"},
	GroupByDestination: {table: domain.TableDestinations, label: "city", joinKey: "destination_id"},
}

// FlightSummary builds the per-group flight count aggregate: the
// grouping entity left-joined onto Flights through the mode's foreign
// key, so groups with no flights still appear with a count of zero.
// The condition clause is caller-supplied text applied before grouping
// ("1=1" keeps every group); like SelectWhere it is interpolated by
// design. An unrecognized mode is rejected before any SQL is built.
func FlightSummary(mode GroupMode, condition string) (Statement, error) {
	axis, ok := summaryAxes[mode]
	if !ok {
		return Statement{}, fmt.Errorf("%w: unknown grouping mode %q", ErrValidation, string(mode))
	}
	if strings.TrimSpace(condition) == "" {
		condition = "1=1"
	}
	return Statement{
		SQL: fmt.Sprintf(
			"SELECT g.%s AS %s, COUNT(f.id) AS flights FROM %s g LEFT JOIN %s f ON f.%s = g.id WHERE %s GROUP BY g.id",
			axis.label, string(mode), axis.table, domain.TableFlights, axis.joinKey, condition),
	}, nil
}

// PilotSchedule lists a pilot's flights with source and destination
// city names, ordered by departure time. The pilot id is bound.
func PilotSchedule(pilotID int64) Statement {
	return Statement{
		SQL: fmt.Sprintf(
			"SELECT f.flight_number, src.city AS source, dst.city AS destination, "+
				"f.departure_time, f.arrival_time, f.status "+
				"FROM %s f "+
				"JOIN %s src ON f.source_id = src.id "+
				"JOIN %s dst ON f.destination_id = dst.id "+
				"WHERE f.pilot_id = ? ORDER BY f.departure_time",
			domain.TableFlights, domain.TableDestinations, domain.TableDestinations),
		Args: []any{pilotID},
	}
}

// DropTable removes a table if it exists.
func DropTable(table string) Statement {
	return Statement{SQL: fmt.Sprintf("DROP TABLE IF EXISTS %s", table)}
}

// formatLiteral renders a coerced scalar as SQL text: integers bare,
// everything else as a quoted text literal.
func formatLiteral(v any) string {
	switch val := v.(type) {
	case int64:
		return fmt.Sprintf("%d", val)
	case int:
		return fmt.Sprintf("%d", val)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(val), "'", "''") + "'"
	}
}
