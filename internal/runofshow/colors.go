package runofshow

import (
	"math"
	"strconv"
	"strings"
)

// SetColumnColor assigns or clears the highlight color of a column.  When
// columnKey matches a custom column id the color lives on that definition;
// otherwise the key is treated as a built-in column key in
// DefaultColumnColors.  Clearing (empty color) removes the map entry
// entirely rather than storing a blank marker.
func (t *ShowTimeline) SetColumnColor(columnKey, color string) {
	if col := t.customColumnByID(columnKey); col != nil {
		col.HighlightColor = color
		return
	}
	if color == "" {
		delete(t.DefaultColumnColors, columnKey)
		return
	}
	if t.DefaultColumnColors == nil {
		t.DefaultColumnColors = make(map[string]string)
	}
	t.DefaultColumnColors[columnKey] = color
}

// UseDarkText reports whether dark foreground text is legible on the given
// hex background.  It uses the perceived-brightness formula
// hsp = sqrt(0.299 r² + 0.587 g² + 0.114 b²) with a threshold of 127.5.
// Invalid or absent hex counts as a light background (dark text).  Every
// render consumer (screen table, color export, print export) must go through
// this single definition so their output never drifts apart.
func UseDarkText(hex string) bool {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return true
	}
	hsp := math.Sqrt(0.299*float64(r*r) + 0.587*float64(g*g) + 0.114*float64(b*b))
	return hsp > 127.5
}

// TextColorForHex returns the foreground hex to draw on the given background.
func TextColorForHex(background string) string {
	if UseDarkText(background) {
		return "#000000"
	}
	return "#FFFFFF"
}

// parseHexColor reads a "#RRGGBB" token; the leading '#' is optional.
func parseHexColor(hex string) (r, g, b int, ok bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	rv, errR := strconv.ParseInt(s[0:2], 16, 32)
	gv, errG := strconv.ParseInt(s[2:4], 16, 32)
	bv, errB := strconv.ParseInt(s[4:6], 16, 32)
	if errR != nil || errG != nil || errB != nil {
		return 0, 0, 0, false
	}
	return int(rv), int(gv), int(bv), true
}

// ResolvedColumn is one display column handed to a renderer: built-in
// columns carry their field key and any color from DefaultColumnColors,
// custom columns carry their definition's id, name and color.
type ResolvedColumn struct {
	Key       string // field key for built-ins, column id for customs
	Label     string
	ValueType string
	Color     string
	Custom    bool
}

// builtinColumns is the fixed display order of the built-in item fields.
var builtinColumns = []struct{ key, label string }{
	{ColItemNumber, "Item #"},
	{ColStartTime, "Start Time"},
	{ColPreset, "Preset / Scene"},
	{ColDuration, "Duration"},
	{ColPrivateNotes, "Private Notes"},
	{ColProductionNotes, "Production Notes"},
	{ColAudio, "Audio"},
	{ColVideo, "Video"},
	{ColLights, "Lights"},
}

// ResolvedColumns flattens the display schema for a renderer: the built-in
// columns with DefaultColumnColors merged in, followed by the custom columns
// with their own highlight colors.
func (t *ShowTimeline) ResolvedColumns() []ResolvedColumn {
	out := make([]ResolvedColumn, 0, len(builtinColumns)+len(t.CustomColumns))
	for _, bc := range builtinColumns {
		out = append(out, ResolvedColumn{
			Key:       bc.key,
			Label:     bc.label,
			ValueType: ValueTypeText,
			Color:     t.DefaultColumnColors[bc.key],
		})
	}
	for _, col := range t.CustomColumns {
		out = append(out, ResolvedColumn{
			Key:       col.ID,
			Label:     col.Name,
			ValueType: col.ValueType,
			Color:     col.HighlightColor,
			Custom:    true,
		})
	}
	return out
}

// CellColor resolves the background color for one row/column pair: the row's
// own highlight wins over the column color, and an empty result means the
// renderer's default.
func CellColor(e *Entry, col ResolvedColumn) string {
	if e.HighlightColor != "" {
		return e.HighlightColor
	}
	return col.Color
}

// CellValue returns the display value of an entry under a resolved column.
// Custom columns read the item's CustomValues map by column name.
func CellValue(e *Entry, col ResolvedColumn) string {
	if col.Custom {
		return e.CustomValues[col.Label]
	}
	switch col.Key {
	case ColItemNumber:
		return e.ItemNumber
	case ColStartTime:
		return e.StartTime
	case ColPreset:
		return e.Preset
	case ColDuration:
		return e.Duration
	case ColPrivateNotes:
		return e.PrivateNotes
	case ColProductionNotes:
		return e.ProductionNotes
	case ColAudio:
		return e.Audio
	case ColVideo:
		return e.Video
	case ColLights:
		return e.Lights
	}
	return ""
}
