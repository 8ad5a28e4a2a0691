// Command wsviz streams a running Core's observations to a connected
// websocket client as JSON frames, one per physics step, and accepts
// {"q":bool,"w":bool,"o":bool,"p":bool} action frames back. It is a thin
// debug/visualization bridge kept outside the ragdoll package: the physics
// core itself never imports gorilla/websocket.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"ragdollcore/ragdoll"
)

// safeWriter serializes concurrent writes to one websocket connection.
type safeWriter struct {
	conn  *websocket.Conn
	mutex sync.Mutex
}

func (w *safeWriter) WriteJSON(v interface{}) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.conn.WriteJSON(v)
}

// keyState holds the latest action frame received from the client. It is
// written by the reader goroutine and read by the tick loop, so every
// access goes through the mutex.
type keyState struct {
	mutex      sync.Mutex
	q, w, o, p bool
}

func (k *keyState) set(q, w, o, p bool) {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.q, k.w, k.o, k.p = q, w, o, p
}

func (k *keyState) get() (q, w, o, p bool) {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	return k.q, k.w, k.o, k.p
}

type server struct {
	upgrader websocket.Upgrader
	logger   *log.Logger
}

func newServer(logger *log.Logger) *server {
	return &server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("[wsviz] upgrade error: %v", err)
		return
	}
	defer conn.Close()

	writer := &safeWriter{conn: conn}
	core := ragdoll.New(ragdoll.WithLogger(s.logger))
	core.Reset(nil)

	var keys keyState
	go readActions(conn, &keys, s.logger)

	ticker := time.NewTicker(time.Duration(float64(time.Second) * 0.04))
	defer ticker.Stop()

	for range ticker.C {
		q, w, o, p := keys.get()
		core.SetAction(q, w, o, p)
		core.Step(nil, nil)
		obs := core.GetObservation()

		if err := writer.WriteJSON(obs); err != nil {
			s.logger.Printf("[wsviz] write error: %v", err)
			return
		}
		if obs.GameEnded {
			core.Reset(nil)
		}
	}
}

// readActions reads action frames from the client and updates keys. It
// never blocks the step loop.
func readActions(conn *websocket.Conn, keys *keyState, logger *log.Logger) {
	for {
		var msg struct{ Q, W, O, P bool }
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		keys.set(msg.Q, msg.W, msg.O, msg.P)
	}
}

func main() {
	addr := flag.String("addr", ":8089", "listen address")
	flag.Parse()

	logger := log.New(os.Stderr, "[wsviz] ", log.LstdFlags)
	s := newServer(logger)

	http.HandleFunc("/ws", s.handleWS)
	logger.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Fatalf("serve: %v", err)
	}
}
