// Package room implements the per-floor presence hub: ephemeral websocket
// state, join/move/heartbeat relay, and liveness-based eviction. Rooms hold
// no durable RPG state and never call into player sessions.
package room

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mike-warlet/megarealms/internal/game"
)

const (
	sweepInterval    = 30 * time.Second
	heartbeatTimeout = 30 * time.Second
	writeTimeout     = 5 * time.Second
)

// Presence is one connection's transient identity and position. It is owned
// by its room and never persisted.
type Presence struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Voc   string `json:"voc"`
	Level int    `json:"lv"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Dir   int    `json:"dir"`

	lastPing time.Time
}

// peer wraps a connection with a write mutex so concurrent broadcasts never
// interleave frames on the same socket.
type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *peer) write(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

type clientMessage struct {
	T    string `json:"t"`
	Name string `json:"name"`
	Voc  string `json:"voc"`
	Lv   int    `json:"lv"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Dir  *int   `json:"dir"`
}

type initMessage struct {
	T       string      `json:"t"`
	ID      string      `json:"id"`
	Players []*Presence `json:"players"`
}

type joinMessage struct {
	T string    `json:"t"`
	P *Presence `json:"p"`
}

type moveMessage struct {
	T  string `json:"t"`
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
	D  int    `json:"d"`
}

type leaveMessage struct {
	T  string `json:"t"`
	ID string `json:"id"`
}

type eventMessage struct {
	T  string          `json:"t"`
	Ev json.RawMessage `json:"ev"`
}

// Room is the presence hub for one floor.
type Room struct {
	floor int
	now   func() time.Time

	mu        sync.Mutex
	peers     map[*peer]*Presence
	lastSweep time.Time
}

func newRoom(floor int, now func() time.Time) *Room {
	return &Room{
		floor: floor,
		now:   now,
		peers: map[*peer]*Presence{},
	}
}

// Floor returns the room's floor number.
func (r *Room) Floor() int {
	return r.floor
}

// Count returns the number of tracked connections.
func (r *Room) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.peers)
}

// Handle owns the connection for its lifetime: registers a presence, sends
// the peer snapshot, relays messages, and broadcasts the leave on exit. It
// returns when the connection closes or the context is canceled.
func (r *Room) Handle(ctx context.Context, conn *websocket.Conn) {
	r.sweepIfDue(r.now())

	p := &peer{conn: conn}
	pres := &Presence{
		ID:       uuid.NewString()[:8],
		Name:     "Player",
		Voc:      "knight",
		Level:    1,
		Dir:      game.DefaultDir,
		lastPing: r.now(),
	}

	r.mu.Lock()
	existing := make([]*Presence, 0, len(r.peers))
	for _, other := range r.peers {
		snap := *other
		existing = append(existing, &snap)
	}
	r.peers[p] = pres
	r.mu.Unlock()

	defer r.drop(p)

	if err := p.writeJSON(initMessage{T: "init", ID: pres.ID, Players: existing}); err != nil {
		return
	}

	snap := *pres
	r.broadcast(p, joinMessage{T: "j", P: &snap})

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			// A malformed message from one peer never affects others.
			continue
		}

		switch msg.T {
		case "j":
			r.handleJoin(p, pres, msg)
		case "m":
			r.handleMove(p, pres, msg)
		case "p":
			r.handlePing(p, pres)
		}
	}
}

func (r *Room) handleJoin(p *peer, pres *Presence, msg clientMessage) {
	r.mu.Lock()
	pres.Name = truncateName(msg.Name)
	if msg.Voc != "" {
		pres.Voc = msg.Voc
	}
	if msg.Lv > 0 {
		pres.Level = msg.Lv
	}
	pres.X = msg.X
	pres.Y = msg.Y
	if msg.Dir != nil {
		pres.Dir = *msg.Dir
	}
	pres.lastPing = r.now()
	snap := *pres
	r.mu.Unlock()

	r.broadcast(p, joinMessage{T: "j", P: &snap})
}

func (r *Room) handleMove(p *peer, pres *Presence, msg clientMessage) {
	r.mu.Lock()
	pres.X = msg.X
	pres.Y = msg.Y
	if msg.Dir != nil {
		pres.Dir = *msg.Dir
	}
	if msg.Lv > 0 {
		pres.Level = msg.Lv
	}
	pres.lastPing = r.now()
	out := moveMessage{T: "m", ID: pres.ID, X: pres.X, Y: pres.Y, D: pres.Dir}
	r.mu.Unlock()

	r.broadcast(p, out)
}

func (r *Room) handlePing(p *peer, pres *Presence) {
	r.mu.Lock()
	pres.lastPing = r.now()
	r.mu.Unlock()

	// Heartbeat ack goes to the sender only.
	_ = p.writeJSON(clientMessage{T: "p"})
}

// drop removes the peer and announces the leave to everyone else.
func (r *Room) drop(p *peer) {
	r.mu.Lock()
	pres, ok := r.peers[p]
	if ok {
		delete(r.peers, p)
	}
	r.mu.Unlock()

	if ok {
		r.broadcast(nil, leaveMessage{T: "l", ID: pres.ID})
	}
	_ = p.conn.Close()
}

// sweepIfDue evicts stale presences, at most once per interval, triggered by
// connection arrival rather than a background timer.
func (r *Room) sweepIfDue(now time.Time) {
	r.mu.Lock()
	if now.Sub(r.lastSweep) <= sweepInterval {
		r.mu.Unlock()
		return
	}
	r.lastSweep = now

	type eviction struct {
		p  *peer
		id string
	}
	var evicted []eviction
	for q, pres := range r.peers {
		if now.Sub(pres.lastPing) > heartbeatTimeout {
			delete(r.peers, q)
			evicted = append(evicted, eviction{p: q, id: pres.ID})
		}
	}
	r.mu.Unlock()

	for _, ev := range evicted {
		slog.Info("evicting stale presence", "floor", r.floor, "id", ev.id)
		r.broadcast(nil, leaveMessage{T: "l", ID: ev.id})
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Timeout")
		_ = ev.p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
		_ = ev.p.conn.Close()
	}
}

// broadcast fans a message out to every peer except the sender. Delivery is
// best-effort; a failed send to one peer never aborts the rest.
func (r *Room) broadcast(sender *peer, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	r.mu.Lock()
	targets := make([]*peer, 0, len(r.peers))
	for q := range r.peers {
		if q != sender {
			targets = append(targets, q)
		}
	}
	r.mu.Unlock()

	for _, q := range targets {
		_ = q.write(data)
	}
}

// relayEvent wraps a bus payload and fans it out to every presence.
func (r *Room) relayEvent(data []byte) {
	r.broadcast(nil, eventMessage{T: "e", Ev: json.RawMessage(data)})
}

func (p *peer) writeJSON(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.write(data)
}

func truncateName(name string) string {
	if name == "" {
		return "Player"
	}
	runes := []rune(name)
	if len(runes) > game.MaxNameLength {
		return string(runes[:game.MaxNameLength])
	}
	return name
}
