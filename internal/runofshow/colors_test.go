package runofshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseDarkText(t *testing.T) {
	t.Parallel()

	assert.True(t, UseDarkText("#FFFFFF"), "white background wants dark text")
	assert.False(t, UseDarkText("#000000"), "black background wants light text")
	assert.False(t, UseDarkText("#112233"))
	assert.True(t, UseDarkText("ffcc00"), "leading # is optional")
	// Invalid or absent hex counts as a light background.
	assert.True(t, UseDarkText(""))
	assert.True(t, UseDarkText("#12"))
	assert.True(t, UseDarkText("#zzzzzz"))
}

func TestTextColorForHex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#000000", TextColorForHex("#FFFFFF"))
	assert.Equal(t, "#FFFFFF", TextColorForHex("#1A1A2E"))
}

func TestSetColumnColorBuiltinAndCustom(t *testing.T) {
	t.Parallel()

	tl := New("colors")
	col := tl.AddCustomColumn("Pyro", ValueTypeText)
	require.NotNil(t, col)

	tl.SetColumnColor(ColAudio, "#445566")
	assert.Equal(t, "#445566", tl.DefaultColumnColors[ColAudio])

	tl.SetColumnColor(col.ID, "#AA0000")
	assert.Equal(t, "#AA0000", col.HighlightColor)
	_, builtin := tl.DefaultColumnColors[col.ID]
	assert.False(t, builtin, "custom column ids must not leak into the builtin map")

	// Clearing removes the builtin key outright instead of storing a blank.
	tl.SetColumnColor(ColAudio, "")
	_, ok := tl.DefaultColumnColors[ColAudio]
	assert.False(t, ok)

	tl.SetColumnColor(col.ID, "")
	assert.Empty(t, col.HighlightColor)
}

func TestResolvedColumnsOrderAndColors(t *testing.T) {
	t.Parallel()

	tl := New("resolve")
	tl.SetColumnColor(ColAudio, "#445566")
	custom := tl.AddCustomColumn("Pyro", ValueTypeNumber)
	custom.HighlightColor = "#778899"

	cols := tl.ResolvedColumns()
	require.Len(t, cols, len(builtinColumns)+1)

	// Built-ins first, in fixed order, with default colors merged in.
	assert.Equal(t, ColItemNumber, cols[0].Key)
	for _, rc := range cols[:len(builtinColumns)] {
		assert.False(t, rc.Custom)
		if rc.Key == ColAudio {
			assert.Equal(t, "#445566", rc.Color)
		}
	}
	last := cols[len(cols)-1]
	assert.True(t, last.Custom)
	assert.Equal(t, custom.ID, last.Key)
	assert.Equal(t, "Pyro", last.Label)
	assert.Equal(t, ValueTypeNumber, last.ValueType)
	assert.Equal(t, "#778899", last.Color)
}

func TestCellColorRowWinsOverColumn(t *testing.T) {
	t.Parallel()

	col := ResolvedColumn{Key: ColAudio, Label: "Audio", Color: "#445566"}
	e := &Entry{Kind: KindItem, HighlightColor: "#112233"}
	assert.Equal(t, "#112233", CellColor(e, col))

	e.HighlightColor = ""
	assert.Equal(t, "#445566", CellColor(e, col))

	assert.Equal(t, "", CellColor(e, ResolvedColumn{Key: ColVideo}))
}

func TestCellValue(t *testing.T) {
	t.Parallel()

	e := &Entry{
		Kind:       KindItem,
		ItemNumber: "3",
		StartTime:  "19:00:00",
		Audio:      "wireless 4",
		CustomValues: map[string]string{
			"Pyro": "cue 12",
		},
	}
	assert.Equal(t, "3", CellValue(e, ResolvedColumn{Key: ColItemNumber}))
	assert.Equal(t, "wireless 4", CellValue(e, ResolvedColumn{Key: ColAudio}))
	assert.Equal(t, "cue 12", CellValue(e, ResolvedColumn{Key: "some-id", Label: "Pyro", Custom: true}))
	assert.Equal(t, "", CellValue(e, ResolvedColumn{Key: "other", Label: "Missing", Custom: true}))
}
