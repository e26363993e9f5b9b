// Package shell is the line-mode interactive layer: a menu loop that
// collects input and translates it into single-shot calls on the
// dataset service. All state lives in the store; the shell keeps none
// between operations.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"flightdb/internal/domain"
	"flightdb/internal/query"
	"flightdb/internal/render"
	"flightdb/internal/seed"
	"flightdb/internal/service"
	"flightdb/internal/storage"
)

// sentinel cancels the current operation from any prompt.
const sentinel = "EXIT"

// errCancelled aborts the current operation and returns to the menu.
var errCancelled = errors.New("cancelled")

// Shell drives the interactive session.
type Shell struct {
	ds        *service.Dataset
	seeder    *seed.Seeder
	storePath string
	rl        *readline.Instance
}

// New creates a Shell reading from the terminal.
func New(ds *service.Dataset, seeder *seed.Seeder, storePath string) (*Shell, error) {
	rl, err := readline.New("flightdb> ")
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}
	return &Shell{ds: ds, seeder: seeder, storePath: storePath, rl: rl}, nil
}

// Close releases the terminal.
func (s *Shell) Close() error { return s.rl.Close() }

// Run loops over the main menu until the user exits or stdin closes.
func (s *Shell) Run(ctx context.Context) error {
	pterm.DefaultBox.WithTitle("Flight Data Manager").Println("Type EXIT at any prompt to cancel the current operation.")

	for {
		s.printMenu()
		choice, err := s.prompt("Enter your choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, errCancelled) {
				return nil
			}
			return err
		}

		var opErr error
		switch strings.TrimSpace(choice) {
		case "1":
			opErr = s.insert(ctx)
		case "2":
			opErr = s.selectAll(ctx)
		case "3":
			opErr = s.search(ctx)
		case "4":
			opErr = s.update(ctx)
		case "5":
			opErr = s.delete(ctx)
		case "6":
			opErr = s.groupCount(ctx)
		case "7":
			opErr = s.flightSummary(ctx)
		case "8":
			opErr = s.pilotSchedule(ctx)
		case "9":
			done, err := s.teardown()
			if err != nil {
				opErr = err
			} else if done {
				return nil
			}
		case "0":
			return nil
		default:
			pterm.Println("Invalid choice")
		}

		if opErr != nil {
			if errors.Is(opErr, io.EOF) {
				return nil
			}
			if !errors.Is(opErr, errCancelled) {
				s.report(opErr)
			}
		}
	}
}

func (s *Shell) printMenu() {
	pterm.Println()
	pterm.Println("Menu:")
	pterm.Println("**********")
	pterm.Println(" 1. Insert a record")
	pterm.Println(" 2. Select all records from a table")
	pterm.Println(" 3. Search records")
	pterm.Println(" 4. Update a record")
	pterm.Println(" 5. Delete a record")
	pterm.Println(" 6. Count records grouped by a column")
	pterm.Println(" 7. Flight summary")
	pterm.Println(" 8. Pilot schedule")
	pterm.Println(" 9. Reset database")
	pterm.Println(" 0. Exit")
	pterm.Println()
}

// ── operations ─────────────────────────────────────────────

func (s *Shell) insert(ctx context.Context) error {
	entity, err := s.pickEntity()
	if err != nil {
		return err
	}
	cols, err := s.ds.EditableColumns(ctx, entity)
	if err != nil {
		return err
	}

	pterm.Println("Enter values for the following fields (leave blank to skip):")
	rec := domain.NewRecord(entity)
	for _, col := range cols {
		value, err := s.prompt(col + ": ")
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		rec.Set(col, domain.Coerce(strings.TrimSpace(value)))
	}
	if rec.Len() == 0 {
		pterm.Println("No data entered.")
		return nil
	}

	rows, err := s.ds.Insert(ctx, rec)
	if err != nil {
		return err
	}
	pterm.Println(render.Table(rows))
	return nil
}

func (s *Shell) selectAll(ctx context.Context) error {
	entity, err := s.pickEntity()
	if err != nil {
		return err
	}
	rows, err := s.ds.SearchAll(ctx, entity)
	if err != nil {
		return err
	}
	pterm.Println(render.Table(rows))
	return nil
}

func (s *Shell) search(ctx context.Context) error {
	entity, err := s.pickEntity()
	if err != nil {
		return err
	}

	mode, err := s.prompt("Search by: 1) id  2) column value: ")
	if err != nil {
		return err
	}

	var rows *storage.Rows
	switch strings.TrimSpace(mode) {
	case "1":
		id, err := s.promptInt("Enter the id to search for: ")
		if err != nil {
			return err
		}
		rows, err = s.ds.SearchByID(ctx, entity, id)
		if err != nil {
			return err
		}
	case "2":
		column, err := s.pickColumn(ctx, entity, false)
		if err != nil {
			return err
		}
		value, err := s.prompt("Enter a value to filter by: ")
		if err != nil {
			return err
		}
		rows, err = s.ds.SearchByColumn(ctx, entity, column, strings.TrimSpace(value))
		if err != nil {
			return err
		}
	default:
		pterm.Println("Invalid choice")
		return nil
	}

	pterm.Println(render.Table(rows))
	return nil
}

func (s *Shell) update(ctx context.Context) error {
	entity, err := s.pickEntity()
	if err != nil {
		return err
	}
	id, err := s.promptInt("Enter the id of the record to update: ")
	if err != nil {
		return err
	}
	column, err := s.pickColumn(ctx, entity, true)
	if err != nil {
		return err
	}
	value, err := s.prompt("Enter new value for " + column + ": ")
	if err != nil {
		return err
	}

	affected, err := s.ds.Update(ctx, entity, id, column, strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if affected == 0 {
		pterm.Println("Cannot find this record in the database")
		return nil
	}
	rows, err := s.ds.SearchByID(ctx, entity, id)
	if err != nil {
		return err
	}
	pterm.Println(render.Table(rows))
	return nil
}

func (s *Shell) delete(ctx context.Context) error {
	entity, err := s.pickEntity()
	if err != nil {
		return err
	}
	id, err := s.promptInt("Enter the id of the record to delete: ")
	if err != nil {
		return err
	}
	affected, err := s.ds.Delete(ctx, entity, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		pterm.Println("Cannot find this record in the database")
		return nil
	}
	pterm.Println("Successfully deleted from table " + entity)
	return nil
}

func (s *Shell) groupCount(ctx context.Context) error {
	entity, err := s.pickEntity()
	if err != nil {
		return err
	}
	column, err := s.pickColumn(ctx, entity, false)
	if err != nil {
		return err
	}
	rows, err := s.ds.GroupCount(ctx, entity, column)
	if err != nil {
		return err
	}
	pterm.Println(render.Table(rows))
	return nil
}

func (s *Shell) flightSummary(ctx context.Context) error {
	mode, err := s.prompt("Group flights by (pilot/source/destination): ")
	if err != nil {
		return err
	}
	condition, err := s.prompt("Extra filter clause (blank for none): ")
	if err != nil {
		return err
	}
	rows, err := s.ds.FlightSummary(ctx, strings.TrimSpace(mode), strings.TrimSpace(condition))
	if err != nil {
		return err
	}
	pterm.Println(render.Table(rows))
	return nil
}

func (s *Shell) pilotSchedule(ctx context.Context) error {
	id, err := s.promptInt("Enter the pilot id: ")
	if err != nil {
		return err
	}
	rows, err := s.ds.PilotSchedule(ctx, id)
	if err != nil {
		return err
	}
	pterm.Println(render.Table(rows))
	return nil
}

// teardown removes the store file after confirmation. Reports whether
// the session should end.
func (s *Shell) teardown() (bool, error) {
	answer, err := s.prompt("Are you sure?(y/n): ")
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(answer) != "y" {
		return false, nil
	}
	if err := os.Remove(s.storePath); err != nil {
		return false, fmt.Errorf("remove store file: %w", err)
	}
	pterm.Println("Database removed. It will be recreated on the next run.")
	return true, nil
}

// ── prompt helpers ─────────────────────────────────────────

// prompt reads one line. The EXIT sentinel cancels the operation.
func (s *Shell) prompt(label string) (string, error) {
	s.rl.SetPrompt(label)
	defer s.rl.SetPrompt("flightdb> ")
	line, err := s.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", errCancelled
		}
		return "", err
	}
	if strings.EqualFold(strings.TrimSpace(line), sentinel) {
		pterm.Println("Cancelled.")
		return "", errCancelled
	}
	return line, nil
}

func (s *Shell) promptInt(label string) (int64, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err == nil {
			return n, nil
		}
		pterm.Println("Please enter a number.")
	}
}

// pickEntity prompts for one of the registered tables.
func (s *Shell) pickEntity() (string, error) {
	names := s.ds.Entities()
	pterm.Println("Choose a table:")
	for i, name := range names {
		pterm.Printf("%d) %s\n", i+1, name)
	}
	for {
		n, err := s.promptInt("")
		if err != nil {
			return "", err
		}
		if n >= 1 && int(n) <= len(names) {
			return names[n-1], nil
		}
		pterm.Println("Invalid choice")
	}
}

// pickColumn prompts for one of the entity's live columns, numbered
// the way the column list is discovered. With editableOnly the id
// column is left out.
func (s *Shell) pickColumn(ctx context.Context, entity string, editableOnly bool) (string, error) {
	var (
		cols []string
		err  error
	)
	if editableOnly {
		cols, err = s.ds.EditableColumns(ctx, entity)
	} else {
		cols, err = s.ds.ListColumns(ctx, entity)
	}
	if err != nil {
		return "", err
	}

	pterm.Println("Choose a column:")
	for i, col := range cols {
		pterm.Printf("%d) %s\n", i+1, col)
	}
	for {
		n, err := s.promptInt("")
		if err != nil {
			return "", err
		}
		if n >= 1 && int(n) <= len(cols) {
			return cols[n-1], nil
		}
		pterm.Println("Invalid choice")
	}
}

// report prints a short human message for a failed operation; raw
// store faults never reach the user.
func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, storage.ErrSchemaLookup):
		pterm.Println("Table not found.")
	case errors.Is(err, query.ErrValidation):
		pterm.Println("Invalid input: " + trimSentinelErr(err))
	case errors.Is(err, storage.ErrExecution):
		pterm.Println("Operation failed.")
	default:
		pterm.Println("Operation failed: " + err.Error())
	}
}

// trimSentinelErr strips the sentinel prefix so the user sees only the
// specific part of a validation message.
func trimSentinelErr(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
