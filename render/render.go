// Package render turns board pictures into images: a fixed role → color
// palette shared by every front-end, and PNG encoding via gg.
package render

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/peovukea/Pathfinding-visualization/gridgraph"
	"github.com/peovukea/Pathfinding-visualization/layout"
)

// Palette maps each cell kind to a color.
type Palette struct {
	Free    color.RGBA
	Blocked color.RGBA
	Start   color.RGBA
	End     color.RGBA
	Open    color.RGBA
	Closed  color.RGBA
	Path    color.RGBA
	Line    color.RGBA
}

// Classic is the default palette: grey board, black barriers, orange
// markers, green open cells, red closed cells and a turquoise path.
var Classic = Palette{
	Free:    color.RGBA{225, 225, 225, 255},
	Blocked: color.RGBA{0, 0, 0, 255},
	Start:   color.RGBA{255, 165, 0, 255},
	End:     color.RGBA{255, 165, 0, 255},
	Open:    color.RGBA{0, 255, 0, 255},
	Closed:  color.RGBA{255, 0, 0, 255},
	Path:    color.RGBA{64, 244, 208, 255},
	Line:    color.RGBA{128, 128, 128, 255},
}

// Color returns the color of a layout rune. Unknown runes draw as free.
func (p Palette) Color(ch rune) color.RGBA {
	switch ch {
	case layout.RuneBlocked:
		return p.Blocked
	case layout.RuneStart:
		return p.Start
	case layout.RuneEnd:
		return p.End
	case layout.RuneOpen:
		return p.Open
	case layout.RuneClosed:
		return p.Closed
	case layout.RunePath:
		return p.Path
	}
	return p.Free
}

// Frame is what gets drawn: one layout string per row, the cell size and
// the full pixel width of the square canvas.
type Frame struct {
	Cells []string
	Size  int
	Width int
}

// FrameOf captures the current state of g.
func FrameOf(g *gridgraph.Grid) Frame {
	return Frame{Cells: layout.Rows(g), Size: g.Size(), Width: g.Width()}
}

// Draw paints f onto dc: background, one filled square per cell, then grid
// lines every Size pixels across the whole width.
func Draw(dc *gg.Context, f Frame, p Palette) {
	dc.SetColor(p.Free)
	dc.Clear()

	s := float64(f.Size)
	for r, line := range f.Cells {
		c := 0
		for _, ch := range line {
			if col := p.Color(ch); col != p.Free {
				dc.SetColor(col)
				dc.DrawRectangle(float64(c)*s, float64(r)*s, s, s)
				dc.Fill()
			}
			c++
		}
	}

	w := float64(f.Width)
	dc.SetColor(p.Line)
	dc.SetLineWidth(1)
	for i := range f.Cells {
		y := float64(i) * s
		dc.DrawLine(0, y, w, y)
		dc.DrawLine(y, 0, y, w)
	}
	dc.Stroke()
}

// Image renders f into a new Width × Width image.
func Image(f Frame, p Palette) image.Image {
	dc := gg.NewContext(f.Width, f.Width)
	Draw(dc, f, p)
	return dc.Image()
}

// WritePNG encodes f as PNG to w.
func WritePNG(w io.Writer, f Frame, p Palette) error {
	dc := gg.NewContext(f.Width, f.Width)
	Draw(dc, f, p)
	return dc.EncodePNG(w)
}

// SavePNG writes f as a PNG file.
func SavePNG(path string, f Frame, p Palette) error {
	dc := gg.NewContext(f.Width, f.Width)
	Draw(dc, f, p)
	return dc.SavePNG(path)
}

// PNG returns f encoded as PNG bytes.
func PNG(f Frame, p Palette) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, f, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
