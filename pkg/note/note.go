package note

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// New creates a note in the given collection. The ID is assigned here
// and never reused, even after the note is removed.
func New(collection, message string) *Note {
	return &Note{
		ID:         uuid.NewString(),
		Collection: collection,
		Message:    message,
		Created:    Now(),
	}
}

type Note struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	Message    string    `json:"message,omitempty"`
	Done       bool      `json:"done,omitempty"`
	Created    Timestamp `json:"created"`
}

// Strike toggles the done marker.
func (n *Note) Strike() {
	n.Done = !n.Done
}

func (n *Note) Title() string {
	return n.Collection
}

// Row returns the columns used by tabular printers.
func (n *Note) Row() (string, string) {
	return n.Marker(), n.Message
}

func (n *Note) Marker() string {
	if n.Done {
		return "x"
	}
	return "-"
}

func (n *Note) String() string {
	if n.Done {
		return fmt.Sprintf("x %s", strikethrough(n.Message))
	}
	return fmt.Sprintf("- %s", n.Message)
}

func strikethrough(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(r)
		b.WriteRune('̶')
	}
	return b.String()
}
