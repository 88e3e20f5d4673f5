package runofshow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTimeline assembles entries in order from kind markers: "i" adds an
// item, "h" adds a header.
func buildTimeline(t *testing.T, kinds ...string) *ShowTimeline {
	t.Helper()
	tl := New("Saturday Main Stage")
	for _, k := range kinds {
		switch k {
		case "i":
			tl.AddEntry(KindItem, -1)
		case "h":
			tl.AddEntry(KindHeader, -1)
		default:
			t.Fatalf("unknown kind marker %q", k)
		}
	}
	return tl
}

func itemNumbers(tl *ShowTimeline) []string {
	var nums []string
	for _, e := range tl.Entries {
		if e.Kind == KindItem {
			nums = append(nums, e.ItemNumber)
		}
	}
	return nums
}

func TestAddEntryNumbersItemsSkippingHeaders(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "i", "h", "i", "h", "h", "i")
	assert.Equal(t, []string{"1", "2", "3"}, itemNumbers(tl))

	// Headers never receive an item number.
	for _, e := range tl.Entries {
		if e.Kind == KindHeader {
			assert.Empty(t, e.ItemNumber)
		}
	}
}

func TestAddEntryInsertAtPosition(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "i", "i")
	first := tl.Entries[0].ID
	inserted := tl.AddEntry(KindItem, 1)

	require.Len(t, tl.Entries, 3)
	assert.Equal(t, first, tl.Entries[0].ID)
	assert.Equal(t, inserted.ID, tl.Entries[1].ID)
	// Numbering reflects list order, not insertion order.
	assert.Equal(t, []string{"1", "2", "3"}, itemNumbers(tl))
}

func TestAddEntrySeedsCustomColumnValues(t *testing.T) {
	t.Parallel()

	tl := New("x")
	tl.AddCustomColumn("Pyro", ValueTypeText)
	e := tl.AddEntry(KindItem, -1)

	v, ok := e.CustomValues["Pyro"]
	require.True(t, ok, "new item should carry a blank value for each existing column")
	assert.Equal(t, "", v)

	h := tl.AddEntry(KindHeader, -1)
	assert.Nil(t, h.CustomValues, "headers carry no custom values")
}

func TestMoveEntryRenumbersSequentially(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "i", "h", "i", "i")
	last := tl.Entries[3]
	tl.MoveEntry(last.ID, MoveUp)

	assert.Equal(t, []string{"1", "2", "3"}, itemNumbers(tl))
	assert.Equal(t, last.ID, tl.Entries[2].ID)
	assert.Equal(t, "2", last.ItemNumber)
}

func TestMoveEntryBoundaryIsNoop(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "i", "i")
	top := tl.Entries[0]
	bottom := tl.Entries[1]

	tl.MoveEntry(top.ID, MoveUp)
	tl.MoveEntry(bottom.ID, MoveDown)

	assert.Equal(t, top.ID, tl.Entries[0].ID)
	assert.Equal(t, bottom.ID, tl.Entries[1].ID)
}

func TestDeleteEntryRenumbers(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "i", "i", "i")
	tl.DeleteEntry(tl.Entries[0].ID)

	require.Len(t, tl.Entries, 2)
	assert.Equal(t, []string{"1", "2"}, itemNumbers(tl))
}

func TestDeleteEntryUnknownIDIsNoop(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "i")
	tl.DeleteEntry("nope")
	assert.Len(t, tl.Entries, 1)
}

func TestUpdateFieldUnknownEntryIsNoop(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "i")
	tl.UpdateField("nope", ColPreset, "blackout")
	assert.Empty(t, tl.Entries[0].Preset)
}

func TestUpdateFieldCustomKeyWritesCustomValues(t *testing.T) {
	t.Parallel()

	tl := New("x")
	tl.AddCustomColumn("Pyro", ValueTypeText)
	e := tl.AddEntry(KindItem, -1)

	tl.UpdateField(e.ID, "Pyro", "cue 12")
	assert.Equal(t, "cue 12", e.CustomValues["Pyro"])
	// The structural id field is unreachable through field updates.
	tl.UpdateField(e.ID, "id", "hijack")
	assert.NotEqual(t, "hijack", e.ID)
}

func TestCascadeUpdatesHeadersAndFirstItemOnly(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "i", "h", "h", "i", "i")
	lead := tl.Entries[0]
	downstream := tl.Entries[4]
	downstream.StartTime = "21:00:00"

	tl.UpdateField(lead.ID, ColStartTime, "19:00:00")
	tl.UpdateField(lead.ID, ColDuration, "05:30")

	// Both consecutive headers and the first following item get the sum.
	assert.Equal(t, "19:05:30", tl.Entries[1].StartTime)
	assert.Equal(t, "19:05:30", tl.Entries[2].StartTime)
	assert.Equal(t, "19:05:30", tl.Entries[3].StartTime)
	// The item past the first is untouched: propagation is single-step.
	assert.Equal(t, "21:00:00", downstream.StartTime)
}

func TestCascadeAbortsOnInvalidInput(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "i", "i")
	lead := tl.Entries[0]
	next := tl.Entries[1]

	tl.UpdateField(lead.ID, ColStartTime, "19:00:00")
	tl.UpdateField(lead.ID, ColDuration, "05:30")
	require.Equal(t, "19:05:30", next.StartTime)

	// Clearing the duration must not disturb the neighbor's time.
	tl.UpdateField(lead.ID, ColDuration, "")
	assert.Equal(t, "19:05:30", next.StartTime)

	// Partial input while typing is equally inert.
	tl.UpdateField(lead.ID, ColDuration, "05:")
	assert.Equal(t, "19:05:30", next.StartTime)
}

func TestCascadeNotTriggeredFromHeaderEdit(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "h", "i")
	head := tl.Entries[0]
	item := tl.Entries[1]

	tl.UpdateField(head.ID, ColStartTime, "19:00:00")
	assert.Empty(t, item.StartTime)
}

func TestApplyDispatchesCommands(t *testing.T) {
	t.Parallel()

	tl := New("cmd")
	require.NoError(t, Apply(tl, AddEntryCommand{Kind: KindItem, Position: -1}))
	require.NoError(t, Apply(tl, AddEntryCommand{Kind: KindItem, Position: -1}))
	id := tl.Entries[0].ID

	require.NoError(t, Apply(tl, UpdateFieldCommand{EntryID: id, FieldKey: ColStartTime, Value: "10:00:00"}))
	require.NoError(t, Apply(tl, UpdateFieldCommand{EntryID: id, FieldKey: ColDuration, Value: "90"}))
	assert.Equal(t, "10:01:30", tl.Entries[1].StartTime)

	require.NoError(t, Apply(tl, MoveEntryCommand{EntryID: id, Direction: MoveDown}))
	assert.Equal(t, id, tl.Entries[1].ID)

	require.NoError(t, Apply(tl, AddColumnCommand{Name: "FX", ValueType: ValueTypeText}))
	require.NoError(t, Apply(tl, DeleteEntryCommand{EntryID: id}))
	assert.Len(t, tl.Entries, 1)

	assert.Error(t, Apply(tl, nil))
}

func TestTimelineJSONRoundTrip(t *testing.T) {
	t.Parallel()

	tl := New("Roundtrip")
	tl.AddEntry(KindHeader, -1)
	tl.Entries[0].HeaderTitle = "Act One"
	item := tl.AddEntry(KindItem, -1)
	tl.AddCustomColumn("Pyro", ValueTypeText)
	tl.UpdateField(item.ID, "Pyro", "cue 12")
	tl.UpdateField(item.ID, ColStartTime, "19:00:00")
	tl.UpdateField(item.ID, ColDuration, "05:30")
	tl.UpdateField(item.ID, ColHighlight, "#112233")
	tl.SetColumnColor(ColAudio, "#445566")
	blank := tl.AddEntry(KindItem, -1) // entry left with only defaults
	_ = blank

	raw, err := json.Marshal(tl)
	require.NoError(t, err)

	var back ShowTimeline
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, tl.Name, back.Name)
	require.Len(t, back.Entries, len(tl.Entries))
	for i := range tl.Entries {
		assert.Equal(t, tl.Entries[i], back.Entries[i], "entry %d", i)
	}
	assert.Equal(t, tl.CustomColumns, back.CustomColumns)
	assert.Equal(t, tl.DefaultColumnColors, back.DefaultColumnColors)
}

func TestMoveEntryUnknownDirectionIsNoOp(t *testing.T) {
	t.Parallel()

	tl := buildTimeline(t, "i", "i")
	first, second := tl.Entries[0].ID, tl.Entries[1].ID

	tl.MoveEntry(first, "sideways")
	tl.MoveEntry(first, "")

	assert.Equal(t, first, tl.Entries[0].ID)
	assert.Equal(t, second, tl.Entries[1].ID)
	assert.Equal(t, []string{"1", "2"}, itemNumbers(tl))
}
