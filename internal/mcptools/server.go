package mcptools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"galvani/internal/cell"
)

// NewServer creates an MCP server with the cell tools registered.
func NewServer(cells *cell.Service, version string) *mcp.Server {
	ct := NewCellTools(cells)

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "galvani",
		Version: version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_species",
		Description: "List the species table in display order, optionally filtered by role (reduced, oxidized)",
	}, ct.ListSpecies)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "lookup_species",
		Description: "Look up one species by its exact formula, including the state annotation",
	}, ct.LookupSpecies)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "resolve_cell",
		Description: "Build a galvanic cell from two species: anode, cathode, global equation and, when known, the cell potential",
	}, ct.ResolveCell)

	return srv
}
