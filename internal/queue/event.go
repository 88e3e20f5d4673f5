// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions carried by DocumentEvent. Saved covers both creates and whole
// aggregate saves; Exported is published whenever a rendered export is served.
const (
	ActionSaved    = "saved"
	ActionExported = "exported"
)

// DocumentEvent is published on the document.activity queue whenever a
// document is saved or exported. It carries enough information for downstream
// consumers to log, notify, or trigger analytics without querying the primary
// database.
type DocumentEvent struct {
	Action     string `json:"action"`
	DocumentID uint64 `json:"document_id"`
	OwnerID    uint64 `json:"owner_id"`
	DocType    string `json:"doc_type"`
	Name       string `json:"name"`
	Format     string `json:"format,omitempty"` // export format, empty for saves
	OccurredAt string `json:"occurred_at"`
}
