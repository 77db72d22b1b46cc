package live

import (
	"time"

	"galvani/pkg/models"
)

const (
	EventCellResolved    = "cell.resolved"
	EventNotebookSaved   = "notebook.saved"
	EventNotebookDeleted = "notebook.deleted"
)

// CellEvent is one line on the live board.
type CellEvent struct {
	Type          string      `json:"type"`
	Source        string      `json:"source,omitempty"` // "http", "grpc", "mcp"
	Catalog       string      `json:"catalog,omitempty"`
	UserID        string      `json:"user_id,omitempty"`
	EntryID       string      `json:"entry_id,omitempty"`
	Mode          models.Mode `json:"mode,omitempty"`
	Anode         string      `json:"anode,omitempty"`
	Cathode       string      `json:"cathode,omitempty"`
	Equation      string      `json:"equation,omitempty"`
	CellPotential *float64    `json:"cell_potential,omitempty"`
	At            time.Time   `json:"at"`
}

func NewCellEvent(eventType, source, catalogName string, res models.Resolution) CellEvent {
	return CellEvent{
		Type:          eventType,
		Source:        source,
		Catalog:       catalogName,
		Mode:          res.Mode,
		Anode:         res.Anode(),
		Cathode:       res.Cathode(),
		Equation:      res.Equation.String(),
		CellPotential: res.CellPotential,
		At:            time.Now().UTC(),
	}
}
