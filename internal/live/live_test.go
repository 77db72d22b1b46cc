package live

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"galvani/internal/catalog"
	"galvani/internal/redox"
	"galvani/pkg/models"
)

func resolveDaniell(t *testing.T) models.Resolution {
	t.Helper()
	res, err := redox.NewEngine(catalog.Extended()).Simulate("Zn(s)", "Cu2+(aq)")
	require.NoError(t, err)
	return res
}

func TestNewCellEvent(t *testing.T) {
	ev := NewCellEvent(EventCellResolved, "http", "extended", resolveDaniell(t))
	assert.Equal(t, "Zn", ev.Anode)
	assert.Equal(t, "Cu", ev.Cathode)
	assert.Equal(t, "Zn(s) + Cu2+(aq) -> Zn2+(aq) + Cu(s)", ev.Equation)
	require.NotNil(t, ev.CellPotential)
	assert.InDelta(t, 1.10, *ev.CellPotential, 1e-9)
	assert.False(t, ev.At.IsZero())
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestTCPServerBroadcast(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	var changes atomic.Int32
	hub.OnChange(func(Stats) { changes.Add(1) })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(ln.Addr().String(), hub).Serve(ctx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	r := bufio.NewReader(conn)

	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"type":"welcome"`)
	assert.Contains(t, line, `"transport":"tcp"`)

	waitFor(t, func() bool { return hub.Stats().TCPClients == 1 })
	assert.GreaterOrEqual(t, changes.Load(), int32(1))

	hub.Broadcast(NewCellEvent(EventCellResolved, "grpc", "extended", resolveDaniell(t)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	line, err = r.ReadString('\n')
	require.NoError(t, err)

	var ev CellEvent
	require.NoError(t, json.Unmarshal([]byte(line), &ev))
	assert.Equal(t, EventCellResolved, ev.Type)
	assert.Equal(t, "grpc", ev.Source)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestWSHandlerBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(zaptest.NewLogger(t))

	r := gin.New()
	r.GET("/ws", WSHandler(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), `"transport":"websocket"`)

	waitFor(t, func() bool { return hub.Stats().WSClients == 1 })

	hub.Broadcast(CellEvent{Type: EventNotebookDeleted, EntryID: "e1", At: time.Now()})

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err = ws.ReadMessage()
	require.NoError(t, err)

	var ev CellEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, EventNotebookDeleted, ev.Type)
	assert.Equal(t, "e1", ev.EntryID)

	require.NoError(t, ws.Close())
	waitFor(t, func() bool { return hub.Stats().WSClients == 0 })
}

func TestBroadcastWithoutClients(t *testing.T) {
	hub := NewHub(nil)
	assert.NotPanics(t, func() { hub.Broadcast(CellEvent{Type: EventCellResolved}) })
	assert.Equal(t, Stats{}, hub.Stats())
}
