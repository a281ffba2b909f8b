// Package review holds per-row user corrections layered over the parsed
// transactions. The overlay never mutates the parsed data; it is derived
// state scoped to one loaded dataset and discarded when the dataset changes.
package review

import "strings"

// Entry is the set of corrections for one row. A zero Entry carries no
// correction and is removed from the overlay.
type Entry struct {
	// DescriptionOverride replaces the original description when non-empty.
	DescriptionOverride string
	// Ignored excludes the row from import.
	Ignored bool
	// CategoryOverride pins the committed category, beating any suggestion.
	CategoryOverride *string
}

func (e Entry) empty() bool {
	return e.DescriptionOverride == "" && !e.Ignored && e.CategoryOverride == nil
}

// Overlay is a pure state container of corrections keyed by row id.
type Overlay struct {
	entries map[string]Entry
}

// NewOverlay creates an empty overlay. One is created per loaded file.
func NewOverlay() *Overlay {
	return &Overlay{entries: make(map[string]Entry)}
}

// SetDescription records a description override for a row. A value that is
// empty after trimming, or equal to the original description, clears the
// override instead, restoring the original effective description.
func (o *Overlay) SetDescription(rowID, value, original string) {
	entry := o.entries[rowID]
	cleaned := strings.TrimSpace(value)
	if cleaned == "" || cleaned == original {
		entry.DescriptionOverride = ""
	} else {
		entry.DescriptionOverride = cleaned
	}
	o.put(rowID, entry)
}

// EffectiveDescription resolves the description the importer will commit:
// the override when set, else the original.
func (o *Overlay) EffectiveDescription(rowID, original string) string {
	if entry, ok := o.entries[rowID]; ok && entry.DescriptionOverride != "" {
		return entry.DescriptionOverride
	}
	return original
}

// SetIgnored sets the row's ignored flag.
func (o *Overlay) SetIgnored(rowID string, ignored bool) {
	entry := o.entries[rowID]
	entry.Ignored = ignored
	o.put(rowID, entry)
}

// ToggleIgnored flips the row's ignored flag. Toggling twice restores the
// original state.
func (o *Overlay) ToggleIgnored(rowID string) {
	entry := o.entries[rowID]
	entry.Ignored = !entry.Ignored
	o.put(rowID, entry)
}

// Ignored reports whether the row has been marked ignored.
func (o *Overlay) Ignored(rowID string) bool {
	return o.entries[rowID].Ignored
}

// SetCategory pins the category committed for a row.
func (o *Overlay) SetCategory(rowID, categoryID string) {
	entry := o.entries[rowID]
	entry.CategoryOverride = &categoryID
	o.put(rowID, entry)
}

// ClearCategory removes a category override, letting the suggestion apply again.
func (o *Overlay) ClearCategory(rowID string) {
	entry := o.entries[rowID]
	entry.CategoryOverride = nil
	o.put(rowID, entry)
}

// Category returns the pinned category for a row, or nil.
func (o *Overlay) Category(rowID string) *string {
	return o.entries[rowID].CategoryOverride
}

// Prune drops entries whose row id is not in the current transaction set.
// Called whenever a new file is loaded or the column mapping regenerates
// the transactions.
func (o *Overlay) Prune(validIDs []string) {
	valid := make(map[string]struct{}, len(validIDs))
	for _, id := range validIDs {
		valid[id] = struct{}{}
	}
	for id := range o.entries {
		if _, ok := valid[id]; !ok {
			delete(o.entries, id)
		}
	}
}

// Reset discards every correction.
func (o *Overlay) Reset() {
	o.entries = make(map[string]Entry)
}

// Len returns the number of rows carrying at least one correction.
func (o *Overlay) Len() int {
	return len(o.entries)
}

func (o *Overlay) put(rowID string, entry Entry) {
	if entry.empty() {
		delete(o.entries, rowID)
		return
	}
	o.entries[rowID] = entry
}
