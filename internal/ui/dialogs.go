package ui

import (
	"fmt"
	"log"

	"LocalPaint/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// dialogs owns the pop ups of the main window. Every choice is forwarded to
// the Controller.
type dialogs struct {
	host   *Controller
	window fyne.Window
	status *widget.Label
}

func (d *dialogs) showError(err error) {
	dialog.ShowError(err, d.window)
}

// sizeChooser shows small/medium/large buttons and calls pick with the
// chosen size in dp.
func (d *dialogs) sizeChooser(title string, pick func(dp float64)) {
	sizes := d.host.Sizes()
	var dlg *dialog.CustomDialog
	button := func(label string, dp float64) *widget.Button {
		return widget.NewButton(label, func() {
			pick(dp)
			dlg.Hide()
		})
	}
	content := container.NewHBox(
		button("Small", sizes.Small),
		button("Medium", sizes.Medium),
		button("Large", sizes.Large),
	)
	dlg = dialog.NewCustom(title, "Cancel", content, d.window)
	dlg.Show()
}

func (d *dialogs) showBrushSize() {
	d.sizeChooser("Brush size:", d.host.SetBrushSize)
}

func (d *dialogs) showEraserSize() {
	d.sizeChooser("Eraser size:", d.host.SetEraserSize)
}

func (d *dialogs) showOpacity() {
	current := d.host.Opacity()
	label := widget.NewLabel(fmt.Sprintf("%d%%", current))
	slider := widget.NewSlider(0, 100)
	slider.Step = 1
	slider.SetValue(float64(current))
	slider.OnChanged = func(v float64) {
		label.SetText(fmt.Sprintf("%d%%", int(v)))
	}

	dialog.ShowCustomConfirm("Opacity level:", "OK", "Cancel",
		container.NewBorder(nil, nil, nil, label, slider),
		func(ok bool) {
			if ok {
				d.host.SetOpacity(int(slider.Value))
			}
		}, d.window)
}

func (d *dialogs) showNew() {
	dialog.ShowConfirm("New drawing", "Start new drawing (you will lose the current drawing)?",
		func(ok bool) {
			if ok {
				d.host.NewDrawing()
			}
		}, d.window)
}

func (d *dialogs) showSave() {
	dialog.ShowConfirm("Save drawing", "Save drawing to device Gallery?",
		func(ok bool) {
			if !ok {
				return
			}
			if d.host.Save() {
				dialog.ShowInformation("Saved", "Drawing saved to Gallery!", d.window)
			} else {
				dialog.ShowInformation("Not saved", "Oops! Image could not be saved.", d.window)
			}
		}, d.window)
}

func (d *dialogs) showExportPDF() {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			d.showError(err)
			return
		}
		if writer == nil {
			return // cancelled
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("Error closing writer: %v", err)
			}
		}()

		if err := export.WritePDF(writer, d.host.Canvas().Snapshot()); err != nil {
			log.Printf("[HOST] PDF export failed: %v", err)
			d.showError(err)
			return
		}
		d.status.SetText("Exported " + writer.URI().Name())
	}, d.window)
	save.SetFileName("drawing.pdf")
	save.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	save.Show()
}
