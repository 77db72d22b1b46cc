package models

import "time"

// NotebookEntry is a resolved cell saved to a user's lab notebook.
type NotebookEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Catalog       string    `json:"catalog"`
	First         string    `json:"first"`
	Second        string    `json:"second"`
	Mode          Mode      `json:"mode"`
	Donor         string    `json:"donor"`
	Acceptor      string    `json:"acceptor"`
	Equation      string    `json:"equation"`
	CellPotential *float64  `json:"cell_potential,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
