package ui

import (
	"LocalPaint/internal/config"
	"LocalPaint/internal/export"
	"LocalPaint/internal/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const appID = "io.localpaint.app"

// Window is the main paint window, wired but not shown yet.
type Window struct {
	fyne.Window
	Host  *Controller
	Board *BoardWidget
}

// NewWindow builds the main window on a for the canvas c.
func NewWindow(a fyne.App, cfg config.Config, c *render.Canvas, patterns *render.Registry) (*Window, error) {
	w := a.NewWindow("LocalPaint")
	w.Resize(fyne.NewSize(cfg.Width, cfg.Height))

	galleryDir := cfg.GalleryDir
	if galleryDir == "" {
		galleryDir = export.DefaultGalleryDir()
	}
	host, err := NewController(c, export.Gallery{Dir: galleryDir}, cfg.Brush, cfg.Color)
	if err != nil {
		return nil, err
	}

	status := widget.NewLabel("Ready")
	host.OnStatus = func(msg string) { status.SetText(msg) }

	d := &dialogs{host: host, window: w, status: status}
	board := NewBoardWidget(c)
	toolbar := NewToolbar(host, d, patterns)

	w.SetContent(container.NewBorder(toolbar, status, nil, nil, board))
	return &Window{Window: w, Host: host, Board: board}, nil
}

// RunApp starts the application and blocks until the window closes.
// setup runs once the window exists, before it is shown.
func RunApp(cfg config.Config, c *render.Canvas, patterns *render.Registry, setup func(*Window)) error {
	a := app.NewWithID(appID)
	w, err := NewWindow(a, cfg, c, patterns)
	if err != nil {
		return err
	}
	if setup != nil {
		setup(w)
	}
	w.ShowAndRun()
	return nil
}
