package runofshow

import (
	"strings"

	"github.com/google/uuid"
)

// AddCustomColumn appends a new custom column definition and seeds a blank
// value for it on every existing item.  A name that trims to empty is a
// silent no-op and returns nil, matching the editor's behavior of ignoring
// an empty add instead of raising an error.
func (t *ShowTimeline) AddCustomColumn(name, valueType string) *CustomColumn {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	col := &CustomColumn{ID: uuid.NewString(), Name: name, ValueType: valueType}
	t.CustomColumns = append(t.CustomColumns, col)
	for _, e := range t.Entries {
		if e.Kind != KindItem {
			continue
		}
		if e.CustomValues == nil {
			e.CustomValues = make(map[string]string)
		}
		e.CustomValues[name] = ""
	}
	return col
}

// RenameCustomColumn changes a column's display name and value type.  The
// name is also the storage key inside each item's CustomValues map, so every
// item holding a value under the old name has it moved to the new key in the
// same pass; no item is left with the orphaned old key.  Empty names and
// unknown column ids are silent no-ops.
func (t *ShowTimeline) RenameCustomColumn(columnID, newName, newValueType string) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return
	}
	col := t.customColumnByID(columnID)
	if col == nil {
		return
	}
	oldName := col.Name
	if oldName != newName {
		for _, e := range t.Entries {
			if e.Kind != KindItem || e.CustomValues == nil {
				continue
			}
			if v, ok := e.CustomValues[oldName]; ok {
				delete(e.CustomValues, oldName)
				e.CustomValues[newName] = v
			}
		}
	}
	col.Name = newName
	col.ValueType = newValueType
}

// DeleteCustomColumn removes a column definition and its value key from
// every item.  Unknown ids are a no-op.
func (t *ShowTimeline) DeleteCustomColumn(columnID string) {
	for i, col := range t.CustomColumns {
		if col.ID != columnID {
			continue
		}
		for _, e := range t.Entries {
			if e.Kind == KindItem && e.CustomValues != nil {
				delete(e.CustomValues, col.Name)
			}
		}
		t.CustomColumns = append(t.CustomColumns[:i], t.CustomColumns[i+1:]...)
		return
	}
}

func (t *ShowTimeline) customColumnByID(columnID string) *CustomColumn {
	for _, col := range t.CustomColumns {
		if col.ID == columnID {
			return col
		}
	}
	return nil
}
