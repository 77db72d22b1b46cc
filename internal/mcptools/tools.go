// Package mcptools exposes the cell service as Model Context Protocol tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"galvani/internal/cell"
	"galvani/internal/redox"
	"galvani/pkg/models"
)

// CellTools holds what the tool handlers need.
type CellTools struct {
	Cells    *cell.Service
	validate *validator.Validate
}

func NewCellTools(cells *cell.Service) *CellTools {
	return &CellTools{Cells: cells, validate: validator.New()}
}

// --- Input types ---

type ListSpeciesInput struct {
	Role string `json:"role,omitempty" jsonschema:"Only list species with this role: reduced or oxidized" validate:"omitempty,oneof=reduced oxidized"`
}

type LookupSpeciesInput struct {
	Formula string `json:"formula,omitempty" jsonschema:"Exact formula including state, e.g. Zn2+(aq)" validate:"required"`
}

type ResolveCellInput struct {
	First  string `json:"first,omitempty" jsonschema:"First selected species formula, e.g. Zn(s)" validate:"required"`
	Second string `json:"second,omitempty" jsonschema:"Second selected species formula, e.g. Cu2+(aq)" validate:"required"`
}

// --- Handlers ---

func (t *CellTools) ListSpecies(_ context.Context, _ *mcp.CallToolRequest, input ListSpeciesInput) (*mcp.CallToolResult, any, error) {
	if err := t.validate.Struct(input); err != nil {
		return toolError("Invalid input: %s", invalidFields(err)), nil, nil
	}

	items := t.Cells.Species(models.Role(input.Role))
	return toolJSON(map[string]any{
		"catalog": t.Cells.CatalogName(),
		"mode":    t.Cells.Engine.Resolver.Mode(),
		"items":   items,
	})
}

func (t *CellTools) LookupSpecies(_ context.Context, _ *mcp.CallToolRequest, input LookupSpeciesInput) (*mcp.CallToolResult, any, error) {
	if err := t.validate.Struct(input); err != nil {
		return toolError("Invalid input: %s", invalidFields(err)), nil, nil
	}

	sp, err := t.Cells.Lookup(input.Formula)
	if err != nil {
		return kindError(err), nil, nil
	}
	return toolJSON(sp)
}

func (t *CellTools) ResolveCell(ctx context.Context, _ *mcp.CallToolRequest, input ResolveCellInput) (*mcp.CallToolResult, any, error) {
	if err := t.validate.Struct(input); err != nil {
		return toolError("Invalid input: %s", invalidFields(err)), nil, nil
	}

	out, err := t.Cells.Simulate(ctx, "mcp", input.First, input.Second)
	if err != nil {
		if redox.IsFatal(err) {
			// broken tables are a server fault, not a tool result
			return nil, nil, fmt.Errorf("resolve cell: %w", err)
		}
		return kindError(err), nil, nil
	}
	return toolJSON(out)
}

// --- Helpers ---

func kindError(err error) *mcp.CallToolResult {
	return toolError("%s: %v", redox.KindOf(err), err)
}

func invalidFields(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
