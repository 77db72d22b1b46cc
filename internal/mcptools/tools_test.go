package mcptools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galvani/internal/catalog"
	"galvani/internal/cell"
	"galvani/internal/redox"
	"galvani/pkg/models"
)

func connect(t *testing.T, c *catalog.Catalog) *mcp.ClientSession {
	t.Helper()
	srv := NewServer(cell.NewService(redox.NewEngine(c), nil, nil, nil), "test")

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	_, err := srv.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, s *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := s.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return tc.Text, result.IsError
}

func TestToolsListed(t *testing.T) {
	s := connect(t, catalog.Daniell())
	res, err := s.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_species", "lookup_species", "resolve_cell"}, names)
}

func TestListSpecies(t *testing.T) {
	s := connect(t, catalog.Daniell())

	text, isErr := callTool(t, s, "list_species", map[string]any{})
	require.False(t, isErr, text)

	var body struct {
		Catalog string           `json:"catalog"`
		Mode    string           `json:"mode"`
		Items   []models.Species `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &body))
	assert.Equal(t, "daniell", body.Catalog)
	assert.Equal(t, "role-only", body.Mode)
	require.Len(t, body.Items, 4)

	text, isErr = callTool(t, s, "list_species", map[string]any{"role": "gas"})
	assert.True(t, isErr)
	assert.Contains(t, text, "role oneof")
}

func TestLookupSpecies(t *testing.T) {
	s := connect(t, catalog.Extended())

	text, isErr := callTool(t, s, "lookup_species", map[string]any{"formula": "Au3+(aq)"})
	require.False(t, isErr, text)
	var sp models.Species
	require.NoError(t, json.Unmarshal([]byte(text), &sp))
	assert.Equal(t, "Au(s)", sp.Conjugate)
	require.NotNil(t, sp.Potential)
	assert.InDelta(t, 1.50, *sp.Potential, 1e-9)

	text, isErr = callTool(t, s, "lookup_species", map[string]any{"formula": "Au"})
	assert.True(t, isErr)
	assert.Contains(t, text, "not_found")

	text, isErr = callTool(t, s, "lookup_species", map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, text, "formula required")
}

func TestResolveCell(t *testing.T) {
	s := connect(t, catalog.Daniell())

	text, isErr := callTool(t, s, "resolve_cell", map[string]any{"first": "Cu2+(aq)", "second": "Zn(s)"})
	require.False(t, isErr, text)

	var out cell.Outcome
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Equal(t, models.Equation{"Zn(s)", "Cu2+(aq)", "Zn2+(aq)", "Cu(s)"}, out.Resolution.Equation)
	assert.Nil(t, out.Resolution.CellPotential)
	assert.Empty(t, out.Potential)

	text, isErr = callTool(t, s, "resolve_cell", map[string]any{"first": "Zn(s)", "second": "Cu(s)"})
	assert.True(t, isErr)
	assert.Contains(t, text, "role_conflict")
}
