package net

import (
	"bytes"
	"image"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	peerBuffer = 4
)

// Peer is a viewer connected to the hub.
type Peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub pushes PNG frames of the committed surface to every connected viewer.
// New viewers first receive the latest frame.
type Hub struct {
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	peers  map[*Peer]bool
	latest []byte
	rev    uint64
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// viewers are browsers on the LAN, any origin is fine
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		peers: make(map[*Peer]bool),
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Latest returns the last published frame and its revision.
func (h *Hub) Latest() ([]byte, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.rev
}

// PublishImage encodes img off the calling goroutine and publishes it.
// Frames older than the last published revision are dropped.
func (h *Hub) PublishImage(rev uint64, img image.Image) {
	go func() {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			log.Printf("[SHARE] Encoding frame %d: %v", rev, err)
			return
		}
		h.Publish(rev, buf.Bytes())
	}()
}

// Publish stores frame as the latest and queues it for every viewer. A viewer
// that is still busy with older frames skips this one.
func (h *Hub) Publish(rev uint64, frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || rev < h.rev {
		return
	}
	h.latest = frame
	h.rev = rev
	for p := range h.peers {
		select {
		case p.send <- frame:
		default:
			log.Printf("[SHARE] Viewer %s is behind, skipping frame %d", p.conn.RemoteAddr(), rev)
		}
	}
}

func (h *Hub) add(p *Peer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.peers[p] = true
	if h.latest != nil {
		p.send <- h.latest
	}
	log.Printf("[SHARE] Viewer connected from %s", p.conn.RemoteAddr())
	return true
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.peers[p] {
		delete(h.peers, p)
		close(p.send)
		log.Printf("[SHARE] Viewer %s disconnected", p.conn.RemoteAddr())
	}
}

// ServeHTTP upgrades the request to a websocket and streams frames to it
// until the viewer goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SHARE] Upgrade failed: %v", err)
		return
	}
	p := &Peer{conn: conn, send: make(chan []byte, peerBuffer)}
	if !h.add(p) {
		conn.Close()
		return
	}

	go p.writeLoop()

	// viewers never send anything useful; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(p)
}

func (p *Peer) writeLoop() {
	defer p.conn.Close()
	for frame := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			log.Printf("[SHARE] Error sending to %s: %v", p.conn.RemoteAddr(), err)
			return
		}
	}
	p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for p := range h.peers {
		delete(h.peers, p)
		close(p.send)
	}
}

// FrameHandler serves the latest frame as a PNG, for viewers without
// websocket support.
func (h *Hub) FrameHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		frame, _ := h.Latest()
		if frame == nil {
			http.Error(w, "no frame yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(frame)
	})
}
