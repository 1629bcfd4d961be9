package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/mdns"
)

// Server exposes a Hub over HTTP:
//
//	/ws          websocket stream of PNG frames
//	/frame.png   latest frame
type Server struct {
	Hub  *Hub
	Addr string // host:port viewers should use

	http *http.Server
	mdns *mdns.Server
}

// Serve starts the share server on port (0 picks a free one) and, when
// advertise is set, announces it over mDNS.
func Serve(port int, hub *Hub, advertise bool, session string) (*Server, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to start share server on port %d: %w", port, err)
	}
	port = ln.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/frame.png", hub.FrameHandler())

	ip, err := GetOutgoingIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	s := &Server{
		Hub:  hub,
		Addr: fmt.Sprintf("%s:%d", ip, port),
		http: &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second},
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[SHARE] Server stopped: %v", err)
		}
	}()
	log.Printf("[SHARE] Listening on %s", s.Addr)

	if advertise {
		m, err := Advertise(port, session)
		if err != nil {
			log.Printf("[SHARE] mDNS disabled: %v", err)
		} else {
			s.mdns = m
		}
	}
	return s, nil
}

// URL is the websocket address viewers connect to.
func (s *Server) URL() string {
	return "ws://" + s.Addr + "/ws"
}

func (s *Server) Close() error {
	if s.mdns != nil {
		s.mdns.Shutdown()
	}
	s.Hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
