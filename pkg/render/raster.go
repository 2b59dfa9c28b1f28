package render

import (
	"image"
	"image/color"
)

// Rasterize draws the document into an 8-bit grayscale pixel grid at its
// declared size. All math is integer and ordering is the node list, so the
// result is deterministic for a given document.
func Rasterize(d *Document) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, d.Width, d.Height))
	fillRect(img, 0, 0, d.Width, d.Height, d.Background)

	for _, n := range d.Nodes {
		switch v := n.(type) {
		case Rect:
			drawRect(img, v)
		case Circle:
			drawCircle(img, v)
		case Line:
			drawLine(img, v)
		case Text:
			drawText(img, v)
		}
	}
	return img
}

func setPixel(img *image.Gray, x, y int, g Gray) {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return
	}
	img.SetGray(x, y, color.Gray{Y: uint8(g)})
}

func fillRect(img *image.Gray, x, y, w, h int, g Gray) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			setPixel(img, xx, yy, g)
		}
	}
}

func drawRect(img *image.Gray, r Rect) {
	fillRect(img, r.X, r.Y, r.W, r.H, r.Fill)
	if r.StrokeWidth > 0 {
		for i := 0; i < r.StrokeWidth; i++ {
			fillRect(img, r.X+i, r.Y+i, r.W-2*i, 1, r.Stroke)
			fillRect(img, r.X+i, r.Y+r.H-1-i, r.W-2*i, 1, r.Stroke)
			fillRect(img, r.X+i, r.Y+i, 1, r.H-2*i, r.Stroke)
			fillRect(img, r.X+r.W-1-i, r.Y+i, 1, r.H-2*i, r.Stroke)
		}
	}
}

func drawCircle(img *image.Gray, c Circle) {
	outer := c.R
	inner := c.R - c.StrokeWidth
	ro2 := outer * outer
	ri2 := inner * inner

	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			d2 := dx*dx + dy*dy
			if d2 > ro2 {
				continue
			}
			if c.StrokeWidth > 0 && d2 > ri2 {
				setPixel(img, c.CX+dx, c.CY+dy, c.Stroke)
			} else {
				setPixel(img, c.CX+dx, c.CY+dy, c.Fill)
			}
		}
	}
}

// drawLine is Bresenham with a square pen of the stroke width.
func drawLine(img *image.Gray, l Line) {
	w := l.StrokeWidth
	if w <= 0 {
		w = 1
	}
	half := w / 2

	dx := abs(l.X2 - l.X1)
	dy := -abs(l.Y2 - l.Y1)
	sx, sy := 1, 1
	if l.X1 > l.X2 {
		sx = -1
	}
	if l.Y1 > l.Y2 {
		sy = -1
	}
	err := dx + dy

	x, y := l.X1, l.Y1
	for {
		fillRect(img, x-half, y-half, w, w, l.Stroke)
		if x == l.X2 && y == l.Y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func drawText(img *image.Gray, t Text) {
	scale := glyphScale(t.Size)
	width := measureText(t.Content, t.Size)

	x := t.X
	switch t.Anchor {
	case AnchorMiddle:
		x -= width / 2
	case AnchorEnd:
		x -= width
	}
	top := t.Y - glyphRows*scale

	for _, r := range t.Content {
		g, ok := glyphFor(r)
		if ok {
			for row := 0; row < glyphRows; row++ {
				for col := 0; col < glyphCols; col++ {
					if g[row][col] != '#' {
						continue
					}
					fillRect(img, x+col*scale, top+row*scale, scale, scale, t.Fill)
				}
			}
		}
		x += glyphAdvance * scale
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TestPattern produces the calibration frame: alternating horizontal
// stripes with a vertical ruler band on the left. Uneven stripe ends make
// mirrored or rotated panel mounting obvious at a glance.
func TestPattern() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	fillRect(img, 0, 0, CanvasWidth, CanvasHeight, White)

	const stripe = 40
	for band := 0; band*stripe < CanvasHeight; band++ {
		if band%2 == 0 {
			// Each black band is a little shorter than the last.
			fillRect(img, 0, band*stripe, CanvasWidth-band*20, stripe, Black)
		}
	}

	// Single-pixel frame marks the addressable edges.
	fillRect(img, 0, 0, CanvasWidth, 1, Black)
	fillRect(img, 0, CanvasHeight-1, CanvasWidth, 1, Black)
	fillRect(img, 0, 0, 1, CanvasHeight, Black)
	fillRect(img, CanvasWidth-1, 0, 1, CanvasHeight, Black)
	return img
}

// FitToPanel converts an arbitrary raster to an 800x480 grayscale frame,
// scaling to fit (nearest neighbor, integer math) and centering on a white
// background when the aspect ratio differs.
func FitToPanel(src image.Image) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	fillRect(dst, 0, 0, CanvasWidth, CanvasHeight, White)

	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 {
		return dst
	}

	// Largest scale that fits both dimensions, as a rational sw/sh vs W/H.
	tw, th := CanvasWidth, CanvasHeight
	if sw*CanvasHeight > sh*CanvasWidth {
		th = sh * CanvasWidth / sw
	} else {
		tw = sw * CanvasHeight / sh
	}
	ox := (CanvasWidth - tw) / 2
	oy := (CanvasHeight - th) / 2

	for y := 0; y < th; y++ {
		sy := sb.Min.Y + y*sh/th
		for x := 0; x < tw; x++ {
			sx := sb.Min.X + x*sw/tw
			c := color.GrayModel.Convert(src.At(sx, sy)).(color.Gray)
			dst.SetGray(ox+x, oy+y, c)
		}
	}
	return dst
}
