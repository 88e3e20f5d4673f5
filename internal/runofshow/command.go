package runofshow

import "fmt"

// Command is one discrete editor mutation.  Handlers (and tests) drive the
// model exclusively through Apply, which keeps the cascade and renumbering
// logic testable without any HTTP harness.
type Command interface {
	isCommand()
}

// AddEntryCommand inserts a blank entry.  Position -1 appends.
type AddEntryCommand struct {
	Kind     EntryKind
	Position int
}

// UpdateFieldCommand sets one field on one entry; edits to startTime or
// duration on an item re-run the cascade.
type UpdateFieldCommand struct {
	EntryID  string
	FieldKey string
	Value    string
}

// DeleteEntryCommand removes one entry.
type DeleteEntryCommand struct {
	EntryID string
}

// MoveEntryCommand swaps an entry with its neighbor ("up" or "down").
type MoveEntryCommand struct {
	EntryID   string
	Direction string
}

// AddColumnCommand appends a custom column.
type AddColumnCommand struct {
	Name      string
	ValueType string
}

// RenameColumnCommand renames a custom column and migrates stored values.
type RenameColumnCommand struct {
	ColumnID  string
	Name      string
	ValueType string
}

// DeleteColumnCommand removes a custom column and its values.
type DeleteColumnCommand struct {
	ColumnID string
}

// SetColumnColorCommand assigns or clears a column highlight color.
type SetColumnColorCommand struct {
	ColumnKey string
	Color     string
}

func (AddEntryCommand) isCommand()       {}
func (UpdateFieldCommand) isCommand()    {}
func (DeleteEntryCommand) isCommand()    {}
func (MoveEntryCommand) isCommand()      {}
func (AddColumnCommand) isCommand()      {}
func (RenameColumnCommand) isCommand()   {}
func (DeleteColumnCommand) isCommand()   {}
func (SetColumnColorCommand) isCommand() {}

// Apply executes one command against the timeline.  Commands follow the
// editor's leniency rules: unknown entry ids and empty column names are
// swallowed, never errors.  Only a command the model does not recognize at
// all is reported back.
func Apply(t *ShowTimeline, cmd Command) error {
	switch c := cmd.(type) {
	case AddEntryCommand:
		t.AddEntry(c.Kind, c.Position)
	case UpdateFieldCommand:
		t.UpdateField(c.EntryID, c.FieldKey, c.Value)
	case DeleteEntryCommand:
		t.DeleteEntry(c.EntryID)
	case MoveEntryCommand:
		t.MoveEntry(c.EntryID, c.Direction)
	case AddColumnCommand:
		t.AddCustomColumn(c.Name, c.ValueType)
	case RenameColumnCommand:
		t.RenameCustomColumn(c.ColumnID, c.Name, c.ValueType)
	case DeleteColumnCommand:
		t.DeleteCustomColumn(c.ColumnID)
	case SetColumnColorCommand:
		t.SetColumnColor(c.ColumnKey, c.Color)
	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
	return nil
}
