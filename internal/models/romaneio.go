package models

// RomaneioType is the workflow a romaneio was built with.
type RomaneioType string

const (
	TypeManual     RomaneioType = "manual"
	TypeSimplified RomaneioType = "simplified"
	TypeAutomated  RomaneioType = "automated"
)

// Valid reports whether t is a known romaneio type.
func (t RomaneioType) Valid() bool {
	switch t {
	case TypeManual, TypeSimplified, TypeAutomated:
		return true
	}
	return false
}

// ItemKind returns the item variant produced by this workflow.
func (t RomaneioType) ItemKind() ItemKind {
	return ItemKind(t)
}

// Status is the lifecycle state of a romaneio.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a romaneio in status s may move to next.
// Status only moves forward: draft, then in_progress, then completed.
// Either open status may be cancelled. Completed and cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Romaneio represents a packing list: a header plus its ordered item collection.
//
// Totals are never stored on the romaneio; they are recomputed from Items
// whenever they are displayed.
type Romaneio struct {
	// ID is the unique identifier for the romaneio (UUID format).
	ID string

	// Number is the human-facing sequence number (e.g. "ROM-000042").
	Number string

	// Title is the display name.
	Title string

	Type   RomaneioType
	Status Status

	// CreatedBy is the display name of whoever opened the romaneio.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the romaneio was created.
	CreatedAt int64

	// Items is the ordered collection backing the romaneio.
	Items []Item
}
