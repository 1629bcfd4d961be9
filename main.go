package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"LocalPaint/internal/config"
	paintnet "LocalPaint/internal/net"
	"LocalPaint/internal/render"
	"LocalPaint/internal/state"
	"LocalPaint/internal/ui"
)

func main() {
	configPath := flag.String("config", "localpaint.toml", "settings file")
	share := flag.Bool("share", false, "stream committed frames to LAN viewers")
	port := flag.Int("port", 0, "share port (overrides the settings file)")
	find := flag.Bool("find", false, "list LocalPaint boards shared on the LAN and exit")
	flag.Parse()

	if *find {
		findBoards()
		return
	}

	cfg, err := config.LoadOrInit(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *share {
		cfg.Share.Enabled = true
	}
	if *port != 0 {
		cfg.Share.Port = *port
	}

	patterns, err := render.BundledRegistry(1)
	if err != nil {
		log.Fatalf("Failed to load patterns: %v", err)
	}
	canvas := render.NewCanvas(patterns, 1, cfg.Brush.Medium)

	var server *paintnet.Server
	if cfg.Share.Enabled {
		server, err = paintnet.Serve(cfg.Share.Port, paintnet.NewHub(), true, state.SessionID)
		if err != nil {
			log.Printf("Sharing disabled: %v", err)
		} else {
			defer server.Close()
			canvas.OnCommit = func(rev uint64) {
				server.Hub.PublishImage(rev, canvas.Snapshot())
			}
		}
	}

	err = ui.RunApp(cfg, canvas, patterns, func(w *ui.Window) {
		if server != nil {
			w.Host.OnStatus("Sharing at " + server.URL())
		}
	})
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}

func findBoards() {
	log.Println("Looking for shared boards...")
	n := 0
	err := paintnet.Browse(func(addr string) {
		n++
		fmt.Printf("ws://%s/ws\n", addr)
	})
	if err != nil {
		log.Printf("Lookup failed: %v", err)
		os.Exit(1)
	}
	if n == 0 {
		log.Println("No boards found")
	}
}
