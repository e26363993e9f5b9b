package query_test

import (
	"errors"
	"strings"
	"testing"

	"flightdb/internal/query"
)

func TestInsert(t *testing.T) {
	stmt, err := query.Insert("Pilots", []string{"name", "flight_hours"}, []any{"Jane Doe", int64(500)})
	if err != nil {
		t.Fatal(err)
	}
	want := "INSERT INTO Pilots (name,flight_hours) VALUES (?,?)"
	if stmt.SQL != want {
		t.Errorf("got %q, want %q", stmt.SQL, want)
	}
	if len(stmt.Args) != 2 {
		t.Errorf("got %d args, want 2", len(stmt.Args))
	}
}

func TestInsert_Rejected(t *testing.T) {
	if _, err := query.Insert("Pilots", nil, nil); !errors.Is(err, query.ErrValidation) {
		t.Errorf("empty attribute set: got %v, want validation error", err)
	}
	if _, err := query.Insert("Pilots", []string{"name"}, []any{"a", "b"}); !errors.Is(err, query.ErrValidation) {
		t.Errorf("length mismatch: got %v, want validation error", err)
	}
}

func TestSelectShapes(t *testing.T) {
	tests := []struct {
		name string
		stmt query.Statement
		want string
	}{
		{"all", query.SelectAll("Pilots"), "SELECT * FROM Pilots WHERE 1=1"},
		{"by id", query.SelectByID("Pilots", 7), "SELECT * FROM Pilots WHERE id = 7"},
		{"last inserted", query.SelectLastInserted("Pilots"), "SELECT * FROM Pilots WHERE id = (SELECT MAX(id) FROM Pilots)"},
		{"where int", query.SelectWhere("Pilots", "flight_hours", int64(500)), "SELECT * FROM Pilots WHERE flight_hours = 500"},
		{"where text", query.SelectWhere("Destinations", "city", "London"), "SELECT * FROM Destinations WHERE city = 'London'"},
	}
	for _, tt := range tests {
		if tt.stmt.SQL != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.stmt.SQL, tt.want)
		}
		if len(tt.stmt.Args) != 0 {
			t.Errorf("%s: select shapes carry no bound args, got %v", tt.name, tt.stmt.Args)
		}
	}
}

func TestSelectWhere_QuotesTextLiteral(t *testing.T) {
	stmt := query.SelectWhere("Destinations", "city", "O'Hare")
	want := "SELECT * FROM Destinations WHERE city = 'O''Hare'"
	if stmt.SQL != want {
		t.Errorf("got %q, want %q", stmt.SQL, want)
	}
}

func TestUpdateAndDeleteBindEverything(t *testing.T) {
	up := query.UpdateByID("Pilots", "flight_hours", int64(600), 1)
	if up.SQL != "UPDATE Pilots SET flight_hours = ? WHERE id = ?" {
		t.Errorf("update SQL: %q", up.SQL)
	}
	if len(up.Args) != 2 || up.Args[0] != int64(600) || up.Args[1] != int64(1) {
		t.Errorf("update args: %v", up.Args)
	}

	del := query.DeleteByID("Pilots", 1)
	if del.SQL != "DELETE FROM Pilots WHERE id = ?" {
		t.Errorf("delete SQL: %q", del.SQL)
	}
	if len(del.Args) != 1 || del.Args[0] != int64(1) {
		t.Errorf("delete args: %v", del.Args)
	}
}

func TestGroupCount(t *testing.T) {
	stmt := query.GroupCount("Flights", "status")
	want := "SELECT status, COUNT(*) AS count FROM Flights GROUP BY status"
	if stmt.SQL != want {
		t.Errorf("got %q, want %q", stmt.SQL, want)
	}
}

func TestFlightSummary(t *testing.T) {
	tests := []struct {
		mode    query.GroupMode
		group   string
		joinKey string
		label   string
	}{
		{query.GroupByPilot, "Pilots", "f.pilot_id", "g.name"},
		{query.GroupBySource, "Destinations", "f.source_id", "g.city"},
		{query.GroupByDestination, "Destinations", "f.destination_id", "g.city"},
	}
	for _, tt := range tests {
		stmt, err := query.FlightSummary(tt.mode, "1=1")
		if err != nil {
			t.Fatalf("%s: %v", tt.mode, err)
		}
		for _, fragment := range []string{
			"FROM " + tt.group + " g",
			"LEFT JOIN Flights f ON " + tt.joinKey + " = g.id",
			tt.label,
			"WHERE 1=1",
			"GROUP BY g.id",
			"COUNT(f.id)",
		} {
			if !strings.Contains(stmt.SQL, fragment) {
				t.Errorf("%s: %q missing fragment %q", tt.mode, stmt.SQL, fragment)
			}
		}
	}
}

func TestFlightSummary_BlankConditionKeepsEveryGroup(t *testing.T) {
	stmt, err := query.FlightSummary(query.GroupByPilot, "  ")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stmt.SQL, "WHERE 1=1") {
		t.Errorf("blank condition not defaulted: %q", stmt.SQL)
	}
}

func TestFlightSummary_UnknownModeRejected(t *testing.T) {
	if _, err := query.FlightSummary(query.GroupMode("airline"), "1=1"); !errors.Is(err, query.ErrValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestParseGroupMode(t *testing.T) {
	for _, in := range []string{"Pilot", "pilot", " SOURCE ", "destination"} {
		if _, err := query.ParseGroupMode(in); err != nil {
			t.Errorf("ParseGroupMode(%q): %v", in, err)
		}
	}
	if _, err := query.ParseGroupMode("airline"); !errors.Is(err, query.ErrValidation) {
		t.Errorf("unknown mode: got %v, want validation error", err)
	}
}

func TestPilotSchedule(t *testing.T) {
	stmt := query.PilotSchedule(2)
	if !strings.Contains(stmt.SQL, "WHERE f.pilot_id = ?") {
		t.Errorf("pilot id not bound: %q", stmt.SQL)
	}
	if !strings.Contains(stmt.SQL, "ORDER BY f.departure_time") {
		t.Errorf("schedule not ordered: %q", stmt.SQL)
	}
	if len(stmt.Args) != 1 || stmt.Args[0] != int64(2) {
		t.Errorf("args: %v", stmt.Args)
	}
}

func TestDropTable(t *testing.T) {
	stmt := query.DropTable("Pilots")
	if stmt.SQL != "DROP TABLE IF EXISTS Pilots" {
		t.Errorf("got %q", stmt.SQL)
	}
}
