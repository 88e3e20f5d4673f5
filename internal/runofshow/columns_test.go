package runofshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCustomColumnSeedsBlankValues(t *testing.T) {
	t.Parallel()

	tl := New("cols")
	tl.AddEntry(KindItem, -1)
	tl.AddEntry(KindHeader, -1)

	col := tl.AddCustomColumn("  Pyro  ", ValueTypeText)
	require.NotNil(t, col)
	assert.Equal(t, "Pyro", col.Name, "names are trimmed before storage")
	assert.NotEmpty(t, col.ID)

	item := tl.Entries[0]
	v, ok := item.CustomValues["Pyro"]
	require.True(t, ok)
	assert.Equal(t, "", v)
	assert.Nil(t, tl.Entries[1].CustomValues)
}

func TestAddCustomColumnEmptyNameIsNoop(t *testing.T) {
	t.Parallel()

	tl := New("cols")
	assert.Nil(t, tl.AddCustomColumn("", ValueTypeText))
	assert.Nil(t, tl.AddCustomColumn("   ", ValueTypeText))
	assert.Empty(t, tl.CustomColumns)
}

func TestRenameCustomColumnMigratesValues(t *testing.T) {
	t.Parallel()

	tl := New("cols")
	e := tl.AddEntry(KindItem, -1)
	col := tl.AddCustomColumn("Pyro", ValueTypeText)
	tl.UpdateField(e.ID, "Pyro", "cue 12")

	tl.RenameCustomColumn(col.ID, "Pyrotechnics", ValueTypeTime)

	assert.Equal(t, "Pyrotechnics", col.Name)
	assert.Equal(t, ValueTypeTime, col.ValueType)
	assert.Equal(t, "cue 12", e.CustomValues["Pyrotechnics"])
	_, stale := e.CustomValues["Pyro"]
	assert.False(t, stale, "old key must be removed, not orphaned")
}

func TestRenameCustomColumnEmptyNameIsNoop(t *testing.T) {
	t.Parallel()

	tl := New("cols")
	col := tl.AddCustomColumn("Pyro", ValueTypeText)
	tl.RenameCustomColumn(col.ID, "   ", ValueTypeNumber)
	assert.Equal(t, "Pyro", col.Name)
	assert.Equal(t, ValueTypeText, col.ValueType)
}

func TestRenameCustomColumnSameNameKeepsValue(t *testing.T) {
	t.Parallel()

	tl := New("cols")
	e := tl.AddEntry(KindItem, -1)
	col := tl.AddCustomColumn("Pyro", ValueTypeText)
	tl.UpdateField(e.ID, "Pyro", "cue 12")

	// Only the value type changes; the storage key is untouched.
	tl.RenameCustomColumn(col.ID, "Pyro", ValueTypeNumber)
	assert.Equal(t, "cue 12", e.CustomValues["Pyro"])
	assert.Equal(t, ValueTypeNumber, col.ValueType)
}

func TestDeleteCustomColumnRemovesValues(t *testing.T) {
	t.Parallel()

	tl := New("cols")
	e := tl.AddEntry(KindItem, -1)
	keep := tl.AddCustomColumn("Keep", ValueTypeText)
	col := tl.AddCustomColumn("Pyro", ValueTypeText)
	tl.UpdateField(e.ID, "Pyro", "cue 12")
	tl.UpdateField(e.ID, "Keep", "yes")

	tl.DeleteCustomColumn(col.ID)

	require.Len(t, tl.CustomColumns, 1)
	assert.Equal(t, keep.ID, tl.CustomColumns[0].ID)
	_, gone := e.CustomValues["Pyro"]
	assert.False(t, gone)
	assert.Equal(t, "yes", e.CustomValues["Keep"])

	// Unknown ids are swallowed.
	tl.DeleteCustomColumn("nope")
	assert.Len(t, tl.CustomColumns, 1)
}
