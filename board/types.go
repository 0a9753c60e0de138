package board

import (
	"fmt"
	"strings"

	"github.com/peovukea/Pathfinding-visualization/gridgraph"
)

// Status is the phase of the latest search.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusFound
	StatusNotFound
	StatusCancelled
)

var statusNames = [...]string{"idle", "running", "found", "not_found", "cancelled"}

// String returns the lowercase status name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// MarshalText encodes the status by name, for JSON and logs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name written by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("board: unknown status %q", text)
}

// Outcome summarises a search.
type Outcome struct {
	Status   Status          `json:"status"`
	Length   int             `json:"length,omitempty"`
	Expanded int             `json:"expanded,omitempty"`
	Steps    int             `json:"steps,omitempty"`
	Path     []gridgraph.Pos `json:"path,omitempty"`

	// Barriers is, after a failed search, the fewest barriers that would
	// have to be erased for start and end to connect.
	Barriers int `json:"barriers,omitempty"`
}

// Snapshot is an immutable picture of the board. Cells holds one layout
// string per row (see package layout for the rune alphabet).
type Snapshot struct {
	Rows    int      `json:"rows"`
	Size    int      `json:"size"`
	Width   int      `json:"width"`
	Cells   []string `json:"cells"`
	Step    int      `json:"step"`
	Outcome Outcome  `json:"outcome"`
}

// Text joins the rows as layout text.
func (s Snapshot) Text() string {
	if len(s.Cells) == 0 {
		return ""
	}
	return strings.Join(s.Cells, "\n") + "\n"
}

// At returns the layout rune at (row, col).
func (s Snapshot) At(row, col int) rune {
	return []rune(s.Cells[row])[col]
}
