// Package runofshow holds the in-memory run-of-show document model: an
// ordered list of show entries (cue items and section headers), a schema of
// user-defined custom columns, and the start-time cascade that keeps
// downstream cues in sync when a duration or start time changes.  The model
// performs no I/O; handlers mutate it through commands and hand the whole
// aggregate to the persistence layer on save.
package runofshow

import (
	"strconv"

	"github.com/google/uuid"
)

// EntryKind discriminates the two entry variants of a run of show.
type EntryKind string

const (
	KindItem   EntryKind = "item"   // a numbered cue row
	KindHeader EntryKind = "header" // a section divider with a title
)

// Built-in column keys.  These are the fixed fields every item row carries;
// they double as the keys of ShowTimeline.DefaultColumnColors and as the
// fieldKey values accepted by the update-field command.
const (
	ColItemNumber      = "itemNumber"
	ColStartTime       = "startTime"
	ColPreset          = "preset"
	ColDuration        = "duration"
	ColPrivateNotes    = "privateNotes"
	ColProductionNotes = "productionNotes"
	ColAudio           = "audio"
	ColVideo           = "video"
	ColLights          = "lights"
	ColHighlight       = "highlightColor"
	ColHeaderTitle     = "headerTitle"
)

// Entry is one row of the run of show.  Kind is immutable after creation;
// exactly one variant's field set is populated.  Headers carry only
// HeaderTitle plus an optional StartTime written by the cascade, items carry
// everything else.  Custom column values live in their own map keyed by
// column name so a column called "id" can never collide with the structural
// id field.
type Entry struct {
	ID              string            `json:"id"`
	Kind            EntryKind         `json:"type"`
	ItemNumber      string            `json:"itemNumber,omitempty"`
	StartTime       string            `json:"startTime,omitempty"`
	Duration        string            `json:"duration,omitempty"`
	Preset          string            `json:"preset,omitempty"`
	PrivateNotes    string            `json:"privateNotes,omitempty"`
	ProductionNotes string            `json:"productionNotes,omitempty"`
	Audio           string            `json:"audio,omitempty"`
	Video           string            `json:"video,omitempty"`
	Lights          string            `json:"lights,omitempty"`
	HighlightColor  string            `json:"highlightColor,omitempty"`
	CustomValues    map[string]string `json:"customValues,omitempty"`
	HeaderTitle     string            `json:"headerTitle,omitempty"`
}

// Column value types.  They only steer the input affordance in the editor;
// stored values are never validated against them.
const (
	ValueTypeText   = "text"
	ValueTypeNumber = "number"
	ValueTypeTime   = "time"
)

// CustomColumn is a user-defined column over the item rows.  Name is unique
// within a timeline and is also the storage key inside each item's
// CustomValues map, so renaming a column rewrites that key on every item.
type CustomColumn struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ValueType      string `json:"type"`
	HighlightColor string `json:"highlightColor,omitempty"`
}

// ShowTimeline is the aggregate root of a run-of-show document.  Entry order
// is semantically significant: it is the display order, the basis for item
// numbering and the direction of the time cascade.  Saves always transmit
// the whole aggregate; LastEdited is carried through but never compared
// (last save wins).
type ShowTimeline struct {
	Name                string            `json:"name"`
	Entries             []*Entry          `json:"items"`
	CustomColumns       []*CustomColumn   `json:"custom_column_definitions,omitempty"`
	DefaultColumnColors map[string]string `json:"default_column_colors,omitempty"`
}

// New returns an empty timeline with the given display name.
func New(name string) *ShowTimeline {
	return &ShowTimeline{Name: name}
}

// AddEntry appends (or inserts at position) a blank entry of the given kind
// and returns it.  New items receive the next item number and a blank value
// for every existing custom column.  A position outside [0,len] appends.
// No cascade runs: a fresh entry has no time set yet.
func (t *ShowTimeline) AddEntry(kind EntryKind, position int) *Entry {
	e := &Entry{ID: uuid.NewString(), Kind: kind}
	if kind == KindItem {
		e.CustomValues = make(map[string]string, len(t.CustomColumns))
		for _, col := range t.CustomColumns {
			e.CustomValues[col.Name] = ""
		}
	}
	if position < 0 || position > len(t.Entries) {
		position = len(t.Entries)
	}
	t.Entries = append(t.Entries, nil)
	copy(t.Entries[position+1:], t.Entries[position:])
	t.Entries[position] = e
	t.renumberItems()
	return e
}

// DeleteEntry removes the entry with the given id.  Unknown ids are a no-op.
func (t *ShowTimeline) DeleteEntry(entryID string) {
	for i, e := range t.Entries {
		if e.ID == entryID {
			t.Entries = append(t.Entries[:i], t.Entries[i+1:]...)
			t.renumberItems()
			return
		}
	}
}

// Move directions accepted by MoveEntry.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// MoveEntry swaps the entry with its neighbor in the given direction and
// renumbers all items.  Unknown direction tokens and moves past either end
// of the list are no-ops.  Moving never re-runs the time cascade; times
// stay as the user left them.
func (t *ShowTimeline) MoveEntry(entryID, direction string) {
	if direction != MoveUp && direction != MoveDown {
		return
	}
	i := t.indexOf(entryID)
	if i < 0 {
		return
	}
	j := i + 1
	if direction == MoveUp {
		j = i - 1
	}
	if j < 0 || j >= len(t.Entries) {
		return
	}
	t.Entries[i], t.Entries[j] = t.Entries[j], t.Entries[i]
	t.renumberItems()
}

// UpdateField sets fieldKey on the entry with entryID.  Keys matching a
// custom column name write into the item's CustomValues map; everything else
// addresses a built-in field.  Editing startTime or duration on an item
// triggers the cascade.  An unknown entry id is a silent no-op, mirroring
// how the editor swallows edits against rows that were just deleted.
func (t *ShowTimeline) UpdateField(entryID, fieldKey, value string) {
	i := t.indexOf(entryID)
	if i < 0 {
		return
	}
	e := t.Entries[i]
	switch fieldKey {
	case ColItemNumber:
		e.ItemNumber = value
	case ColStartTime:
		e.StartTime = value
	case ColDuration:
		e.Duration = value
	case ColPreset:
		e.Preset = value
	case ColPrivateNotes:
		e.PrivateNotes = value
	case ColProductionNotes:
		e.ProductionNotes = value
	case ColAudio:
		e.Audio = value
	case ColVideo:
		e.Video = value
	case ColLights:
		e.Lights = value
	case ColHighlight:
		e.HighlightColor = value
	case ColHeaderTitle:
		e.HeaderTitle = value
	default:
		if e.Kind == KindItem {
			if e.CustomValues == nil {
				e.CustomValues = make(map[string]string)
			}
			e.CustomValues[fieldKey] = value
		}
	}
	if e.Kind == KindItem && (fieldKey == ColStartTime || fieldKey == ColDuration) {
		t.cascadeFrom(i)
	}
}

// indexOf returns the position of the entry with the given id, or -1.
func (t *ShowTimeline) indexOf(entryID string) int {
	for i, e := range t.Entries {
		if e.ID == entryID {
			return i
		}
	}
	return -1
}

// renumberItems rewrites ItemNumber as "1","2","3",... over item entries in
// order, skipping headers.  It runs after every structural change so the
// numbering invariant holds regardless of how entries were rearranged.
func (t *ShowTimeline) renumberItems() {
	n := 0
	for _, e := range t.Entries {
		if e.Kind != KindItem {
			continue
		}
		n++
		e.ItemNumber = strconv.Itoa(n)
	}
}

// cascadeFrom recomputes start times downstream of position i.  It is a
// local, single-step propagation: when the entry at i has both a parseable
// start time and duration, their sum is written into every contiguous header
// immediately below and into the first following item, then the walk stops.
// Entries beyond that first item keep whatever times they already had until
// the user edits them or their predecessor.  If either value fails to parse
// (blank or mid-typing input) nothing downstream is touched.
func (t *ShowTimeline) cascadeFrom(i int) {
	e := t.Entries[i]
	start, ok := ParseTimeToSeconds(e.StartTime)
	if !ok {
		return
	}
	dur, ok := ParseDurationToSeconds(e.Duration)
	if !ok {
		return
	}
	next := FormatSecondsToTime(start + dur)
	for j := i + 1; j < len(t.Entries); j++ {
		t.Entries[j].StartTime = next
		if t.Entries[j].Kind == KindItem {
			break
		}
	}
}
