package export

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"LocalPaint/internal/state"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

// SavePDF writes the drawing as a PDF file at path.
func SavePDF(path string, img image.Image) error {
	if img.Bounds().Empty() {
		return ErrEmptyDrawing
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("[EXPORT] Wrote %s", path)
	return nil
}

// WritePDF writes the drawing on a single A4 page, scaled to fit inside the
// margins and centered. Transparent pixels stay transparent in the PDF.
func WritePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return ErrEmptyDrawing
	}

	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		return fmt.Errorf("encoding drawing: %w", err)
	}

	orientation := "P"
	if b.Dx() > b.Dy() {
		orientation = "L"
	}
	p := gofpdf.New(orientation, "mm", "A4", "")
	p.SetCreator("LocalPaint "+state.SessionID, false)
	p.SetTitle("Drawing", false)
	p.AddPage()

	const name = "drawing"
	p.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &png)

	pageW, pageH := p.GetPageSize()
	left, top, right, bottom := p.GetMargins()
	iw, ih := fitInside(float64(b.Dx()), float64(b.Dy()), pageW-left-right, pageH-top-bottom)
	x := left + (pageW-left-right-iw)/2
	y := top + (pageH-top-bottom-ih)/2
	p.ImageOptions(name, x, y, iw, ih, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// fitInside scales w x h to the largest size that fits in maxW x maxH while
// keeping the aspect ratio.
func fitInside(w, h, maxW, maxH float64) (float64, float64) {
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}
