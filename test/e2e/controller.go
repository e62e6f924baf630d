package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// fakeController serves the live item list and the push websocket on one
// listener, the way a presentation controller would on its two ports.
type fakeController struct {
	mu     sync.Mutex
	list   map[string]any
	conns  []*websocket.Conn
	server *httptest.Server
}

func newFakeController(t *testing.T, list map[string]any) *fakeController {
	t.Helper()
	fc := &fakeController{list: list}
	upgrader := websocket.Upgrader{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/controller/live-items", func(w http.ResponseWriter, r *http.Request) {
		fc.mu.Lock()
		defer fc.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(fc.list)
	})
	mux.HandleFunc("/api/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		fc.mu.Lock()
		fc.conns = append(fc.conns, conn)
		fc.mu.Unlock()
	})

	fc.server = httptest.NewServer(mux)
	t.Cleanup(func() {
		fc.mu.Lock()
		for _, c := range fc.conns {
			c.Close()
		}
		fc.mu.Unlock()
		fc.server.Close()
	})
	return fc
}

// setList replaces the live item list and pushes a change notification.
func (fc *fakeController) setList(list map[string]any) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.list = list
	for _, c := range fc.conns {
		c.WriteMessage(websocket.TextMessage, []byte(`{"results":{"blank":false,"theme":false}}`))
	}
}

func songList(slides ...map[string]any) map[string]any {
	return map[string]any{"name": "Songs", "slides": slides}
}
