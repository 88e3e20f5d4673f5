package runofshow

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Import validation errors.  The rules run in order and the first failure
// wins; nothing is aggregated.  All of them render as a single descriptive
// message for the user who pasted the document.

// ErrInvalidFormat reports input that is not a JSON object at all.
var ErrInvalidFormat = errors.New("invalid format: the pasted text is not a valid JSON document")

// MissingFieldError reports a required field that is absent.  Index is the
// item position for per-item fields and -1 for root-level fields.
type MissingFieldError struct {
	Field string
	Index int
}

func (e *MissingFieldError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("item %d is missing required field %q", e.Index, e.Field)
	}
	return fmt.Sprintf("document is missing required field %q", e.Field)
}

// InvalidValueError reports a field whose value is outside the accepted set.
type InvalidValueError struct {
	Field string
	Index int
}

func (e *InvalidValueError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("item %d has an invalid value for %q", e.Index, e.Field)
	}
	return fmt.Sprintf("document has an invalid value for %q", e.Field)
}

// structural item keys that never land in the custom-value map.
var reservedItemKeys = map[string]bool{
	"id": true, "type": true, "itemNumber": true, "startTime": true,
	"duration": true, "preset": true, "privateNotes": true,
	"productionNotes": true, "audio": true, "video": true, "lights": true,
	"highlightColor": true, "headerTitle": true, "customValues": true,
}

// Import validates and shapes an externally produced JSON document (usually
// the output of an LLM prompt the user ran elsewhere) into a ShowTimeline.
// Validation is deliberately shallow: structure is checked, field values are
// not.  A malformed time string inside an item is not an import error; it
// surfaces later as the cascade's "no value" fallback, the same as partial
// input typed into the editor.
func Import(raw []byte) (*ShowTimeline, error) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, ErrInvalidFormat
	}
	name, ok := root["name"].(string)
	if !ok || name == "" {
		return nil, &MissingFieldError{Field: "name", Index: -1}
	}
	items, ok := root["items"].([]any)
	if !ok {
		return nil, &MissingFieldError{Field: "items", Index: -1}
	}

	t := New(name)
	for i, rawItem := range items {
		obj, ok := rawItem.(map[string]any)
		if !ok {
			return nil, &InvalidValueError{Field: "items", Index: i}
		}
		id := stringField(obj, "id")
		if id == "" {
			return nil, &MissingFieldError{Field: "id", Index: i}
		}
		kind := EntryKind(stringField(obj, "type"))
		if kind != KindItem && kind != KindHeader {
			return nil, &InvalidValueError{Field: "type", Index: i}
		}
		t.Entries = append(t.Entries, importEntry(id, kind, obj))
	}

	// custom_column_definitions is optional and defaults to empty.
	if defs, ok := root["custom_column_definitions"].([]any); ok {
		for _, rawDef := range defs {
			obj, ok := rawDef.(map[string]any)
			if !ok {
				continue
			}
			col := &CustomColumn{
				ID:             stringField(obj, "id"),
				Name:           stringField(obj, "name"),
				ValueType:      stringField(obj, "type"),
				HighlightColor: stringField(obj, "highlightColor"),
			}
			if col.ValueType == "" {
				col.ValueType = ValueTypeText
			}
			t.CustomColumns = append(t.CustomColumns, col)
		}
	}

	// default_column_colors is optional; carried through so a document that
	// already has column colors survives an import round trip intact.
	if colors, ok := root["default_column_colors"].(map[string]any); ok {
		for k, v := range colors {
			s := anyToString(v)
			if s == "" {
				continue
			}
			if t.DefaultColumnColors == nil {
				t.DefaultColumnColors = make(map[string]string)
			}
			t.DefaultColumnColors[k] = s
		}
	}

	t.renumberItems()
	return t, nil
}

// Normalize checks a deserialized timeline at the persistence boundary and
// rewrites its item numbers.  Unlike Import it trusts the editor's own
// serialization: a nil entry list is a legal empty show and no field is
// reshaped, so column colors and custom column schemas pass through
// untouched.  Only the structural minimum is enforced.
func (t *ShowTimeline) Normalize() error {
	if t.Name == "" {
		return &MissingFieldError{Field: "name", Index: -1}
	}
	for i, e := range t.Entries {
		if e == nil {
			return &InvalidValueError{Field: "items", Index: i}
		}
		if e.ID == "" {
			return &MissingFieldError{Field: "id", Index: i}
		}
		if e.Kind != KindItem && e.Kind != KindHeader {
			return &InvalidValueError{Field: "type", Index: i}
		}
	}
	t.renumberItems()
	return nil
}

// importEntry shapes one raw item object into an Entry, enforcing the
// variant invariant: a header keeps only its title and start time, an item
// never carries a header title.  Custom column values arrive either under a
// nested "customValues" object or, in the legacy flat form, as extra string
// keys splatted onto the item itself.
func importEntry(id string, kind EntryKind, obj map[string]any) *Entry {
	e := &Entry{ID: id, Kind: kind, StartTime: stringField(obj, "startTime")}
	if kind == KindHeader {
		e.HeaderTitle = stringField(obj, "headerTitle")
		return e
	}
	e.ItemNumber = stringField(obj, "itemNumber")
	e.Duration = stringField(obj, "duration")
	e.Preset = stringField(obj, "preset")
	e.PrivateNotes = stringField(obj, "privateNotes")
	e.ProductionNotes = stringField(obj, "productionNotes")
	e.Audio = stringField(obj, "audio")
	e.Video = stringField(obj, "video")
	e.Lights = stringField(obj, "lights")
	e.HighlightColor = stringField(obj, "highlightColor")
	e.CustomValues = make(map[string]string)
	if nested, ok := obj["customValues"].(map[string]any); ok {
		for k, v := range nested {
			e.CustomValues[k] = anyToString(v)
		}
	}
	for k, v := range obj {
		if reservedItemKeys[k] {
			continue
		}
		if s, ok := v.(string); ok {
			e.CustomValues[k] = s
		}
	}
	return e
}

// stringField reads obj[key] as a string, tolerating JSON numbers and bools
// the way the original flat documents did.  Missing keys read as "".
func stringField(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok {
		return ""
	}
	return anyToString(v)
}

func anyToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
