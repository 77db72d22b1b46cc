package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

func handleWatch(baseURL string, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	tcpAddr := fs.String("tcp", "", "TCP live board address; WebSocket on the API host when empty")
	wsURL := fs.String("ws", "", "WebSocket URL (defaults to /ws on API host)")
	raw := fs.Bool("raw", false, "print events as received")
	_ = fs.Parse(args)

	if *tcpAddr != "" {
		for {
			if err := watchTCP(*tcpAddr, os.Stdout, *raw); err != nil {
				log.Warnf("live board disconnected: %v", err)
			}
			time.Sleep(time.Second)
		}
	}

	endpoint := *wsURL
	if endpoint == "" {
		var err error
		endpoint, err = websocketURL(baseURL, "/ws")
		if err != nil {
			log.Fatalf("ws url: %v", err)
		}
	}
	if err := watchWS(endpoint, os.Stdout, *raw); err != nil {
		log.Fatalf("watch failed: %v", err)
	}
}

func watchTCP(addr string, w io.Writer, raw bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Infof("connected to %s", addr)
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		printEvent(w, sc.Bytes(), raw)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}

func watchWS(endpoint string, w io.Writer, raw bool) error {
	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Infof("connected to %s", endpoint)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		printEvent(w, msg, raw)
	}
}

type boardEvent struct {
	Type          string   `json:"type"`
	Source        string   `json:"source"`
	Catalog       string   `json:"catalog"`
	EntryID       string   `json:"entry_id"`
	Equation      string   `json:"equation"`
	CellPotential *float64 `json:"cell_potential"`
	Transport     string   `json:"transport"`
}

// printEvent renders one live-board line; anything unparseable is echoed.
func printEvent(w io.Writer, line []byte, raw bool) {
	var ev boardEvent
	if raw || json.Unmarshal(line, &ev) != nil || ev.Type == "" {
		fmt.Fprintln(w, string(line))
		return
	}

	switch ev.Type {
	case "welcome":
		fmt.Fprintf(w, "[welcome] connected over %s\n", ev.Transport)
	case "notebook.deleted":
		fmt.Fprintf(w, "[%s] entry %s\n", ev.Type, ev.EntryID)
	default:
		potential := ""
		if ev.CellPotential != nil {
			potential = fmt.Sprintf("  %.2f V", *ev.CellPotential)
		}
		fmt.Fprintf(w, "[%s] %s (%s via %s)%s\n", ev.Type, ev.Equation, ev.Catalog, ev.Source, potential)
	}
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}
