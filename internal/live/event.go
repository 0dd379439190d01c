package live

// EventType identifies the kind of change pushed to dashboards.
type EventType string

const (
	// EventNewResult signals that a fresh record was created.
	EventNewResult EventType = "newResult"
	// EventResultUpdate signals that an existing record's status or
	// content changed.
	EventResultUpdate EventType = "resultUpdate"
)

// Event is the wire frame pushed over the live channel. The payload stays
// deliberately thin: consumers re-fetch the authoritative list on receipt
// instead of trusting an embedded snapshot.
type Event struct {
	Type EventType `json:"type"`
	Code string    `json:"code,omitempty"`
}
