package domain

import "strings"

// Registered entity names (registry keys, always lower-case).
const (
	EntityPilots       = "pilots"
	EntityDestinations = "destinations"
	EntityFlights      = "flights"
)

// Table names as they appear in SQL.
const (
	TablePilots       = "Pilots"
	TableDestinations = "Destinations"
	TableFlights      = "Flights"
)

// ForeignKey is an edge from a column of one entity to another entity's id.
type ForeignKey struct {
	Column     string
	References string // referenced entity name
}

// Entity is the creation-time definition of one registered table.
// The live store is the source of truth for the current column set;
// Columns here only describe the shape at creation time.
type Entity struct {
	Name        string // registry key, lower-case
	Table       string // table name used in SQL
	DDL         string
	Columns     []string
	ForeignKeys []ForeignKey
	SeedFile    string // file name under the seed directory
}

// Registry holds the fixed set of entity definitions. It is built once at
// startup and read-only afterwards. Lookups on unknown names report absence
// via the second return value; the registry itself never fails.
type Registry struct {
	order  []string
	byName map[string]Entity
}

// NewRegistry returns the registry for the three flight-domain entities.
func NewRegistry() *Registry {
	entities := []Entity{
		{
			Name:  EntityPilots,
			Table: TablePilots,
			DDL: `CREATE TABLE IF NOT EXISTS Pilots (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				license_number TEXT UNIQUE NOT NULL,
				flight_hours INTEGER NOT NULL CHECK (flight_hours >= 0)
			)`,
			Columns:  []string{"id", "name", "license_number", "flight_hours"},
			SeedFile: "pilots.csv",
		},
		{
			Name:  EntityDestinations,
			Table: TableDestinations,
			DDL: `CREATE TABLE IF NOT EXISTS Destinations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				city TEXT NOT NULL,
				country TEXT NOT NULL,
				airport_code TEXT UNIQUE NOT NULL
			)`,
			Columns:  []string{"id", "city", "country", "airport_code"},
			SeedFile: "destinations.csv",
		},
		{
			Name:  EntityFlights,
			Table: TableFlights,
			DDL: `CREATE TABLE IF NOT EXISTS Flights (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				flight_number TEXT UNIQUE NOT NULL,
				source_id INTEGER NOT NULL,
				destination_id INTEGER NOT NULL,
				departure_time TEXT NOT NULL,
				arrival_time TEXT NOT NULL,
				status TEXT NOT NULL,
				pilot_id INTEGER,
				FOREIGN KEY (source_id) REFERENCES Destinations(id),
				FOREIGN KEY (destination_id) REFERENCES Destinations(id),
				FOREIGN KEY (pilot_id) REFERENCES Pilots(id)
			)`,
			Columns: []string{"id", "flight_number", "source_id", "destination_id",
				"departure_time", "arrival_time", "status", "pilot_id"},
			ForeignKeys: []ForeignKey{
				{Column: "source_id", References: EntityDestinations},
				{Column: "destination_id", References: EntityDestinations},
				{Column: "pilot_id", References: EntityPilots},
			},
			SeedFile: "flights.csv",
		},
	}

	r := &Registry{byName: make(map[string]Entity, len(entities))}
	for _, e := range entities {
		r.order = append(r.order, e.Name)
		r.byName[e.Name] = e
	}
	return r
}

// Names returns the entity names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Lookup returns the definition for an entity name (case-insensitive).
func (r *Registry) Lookup(name string) (Entity, bool) {
	e, ok := r.byName[strings.ToLower(name)]
	return e, ok
}

// TableName resolves an entity name to its SQL table name. Unregistered
// names pass through unchanged so generic operations can still reach
// tables the registry does not describe.
func (r *Registry) TableName(name string) string {
	if e, ok := r.Lookup(name); ok {
		return e.Table
	}
	return name
}
