package domain_test

import (
	"strings"
	"testing"

	"flightdb/internal/domain"
)

func TestRegistry_NamesInRegistrationOrder(t *testing.T) {
	reg := domain.NewRegistry()
	got := reg.Names()
	want := []string{"pilots", "destinations", "flights"}
	if len(got) != len(want) {
		t.Fatalf("got %d names, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_LookupIsCaseInsensitive(t *testing.T) {
	reg := domain.NewRegistry()
	e, ok := reg.Lookup("Pilots")
	if !ok {
		t.Fatal("lookup of Pilots failed")
	}
	if e.Table != domain.TablePilots {
		t.Errorf("table = %q, want %q", e.Table, domain.TablePilots)
	}
	if !strings.Contains(e.DDL, "IF NOT EXISTS") {
		t.Error("DDL is not idempotent")
	}
	if e.SeedFile != "pilots.csv" {
		t.Errorf("seed file = %q", e.SeedFile)
	}
}

func TestRegistry_UnknownEntity(t *testing.T) {
	reg := domain.NewRegistry()
	if _, ok := reg.Lookup("spaceships"); ok {
		t.Error("lookup of unregistered entity succeeded")
	}
	// Unregistered names pass through so generic operations can still
	// target them; the live store decides whether they exist.
	if got := reg.TableName("spaceships"); got != "spaceships" {
		t.Errorf("TableName passthrough = %q", got)
	}
}

func TestRegistry_FlightForeignKeys(t *testing.T) {
	reg := domain.NewRegistry()
	e, _ := reg.Lookup("flights")
	refs := make(map[string]string)
	for _, fk := range e.ForeignKeys {
		refs[fk.Column] = fk.References
	}
	if refs["source_id"] != "destinations" || refs["destination_id"] != "destinations" {
		t.Errorf("destination edges wrong: %v", refs)
	}
	if refs["pilot_id"] != "pilots" {
		t.Errorf("pilot edge wrong: %v", refs)
	}
}
