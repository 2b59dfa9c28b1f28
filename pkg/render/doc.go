// Package render turns a screen's content model into a vector document and
// rasterizes it into the 1-bit BMP byte layout e-ink controllers decode.
// Every builder is a pure function of its inputs, so identical inputs
// reproduce pixel-identical output.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// Target panel size in pixels at 1:1.
const (
	CanvasWidth  = 800
	CanvasHeight = 480
)

// ErrRenderFailure indicates a failure while building or rasterizing a
// document. Surfaced with real HTTP semantics on preview endpoints.
var ErrRenderFailure = errors.New("render failure")

// Gray is a grayscale paint level: 0 is black, 255 is white.
type Gray uint8

const (
	Black Gray = 0
	Dark  Gray = 102
	Muted Gray = 153
	White Gray = 255
)

// Anchor controls horizontal text alignment relative to the x coordinate.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Node is one drawable element of a document.
type Node interface {
	writeSVG(b *strings.Builder)
}

// Document is a vector description of one 800x480 frame.
type Document struct {
	Width      int
	Height     int
	Background Gray
	Nodes      []Node
}

// NewDocument creates an empty white canvas at panel size.
func NewDocument() *Document {
	return &Document{Width: CanvasWidth, Height: CanvasHeight, Background: White}
}

// Add appends nodes in draw order.
func (d *Document) Add(nodes ...Node) {
	d.Nodes = append(d.Nodes, nodes...)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H  int
	Fill        Gray
	Stroke      Gray
	StrokeWidth int
}

// Circle is a filled and/or stroked circle.
type Circle struct {
	CX, CY, R   int
	Fill        Gray
	Stroke      Gray
	StrokeWidth int
}

// Line is a straight stroke between two points.
type Line struct {
	X1, Y1, X2, Y2 int
	Stroke         Gray
	StrokeWidth    int
}

// Text draws a string with the fixed glyph face. Size is the glyph height
// in pixels; Y is the text baseline. Content is entity-escaped when the
// document is serialized, so user-supplied strings are always safe.
type Text struct {
	X, Y    int
	Content string
	Size    int
	Anchor  Anchor
	Fill    Gray
}

func colorAttr(g Gray) string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(g), uint8(g), uint8(g))
}

// escape entity-escapes free text before it is embedded in markup.
func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

func (n Rect) writeSVG(b *strings.Builder) {
	fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"`,
		n.X, n.Y, n.W, n.H, colorAttr(n.Fill))
	if n.StrokeWidth > 0 {
		fmt.Fprintf(b, ` stroke="%s" stroke-width="%d"`, colorAttr(n.Stroke), n.StrokeWidth)
	}
	b.WriteString("/>")
}

func (n Circle) writeSVG(b *strings.Builder) {
	fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="%d" fill="%s"`,
		n.CX, n.CY, n.R, colorAttr(n.Fill))
	if n.StrokeWidth > 0 {
		fmt.Fprintf(b, ` stroke="%s" stroke-width="%d"`, colorAttr(n.Stroke), n.StrokeWidth)
	}
	b.WriteString("/>")
}

func (n Line) writeSVG(b *strings.Builder) {
	w := n.StrokeWidth
	if w <= 0 {
		w = 1
	}
	fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%d"/>`,
		n.X1, n.Y1, n.X2, n.Y2, colorAttr(n.Stroke), w)
}

func (n Text) writeSVG(b *strings.Builder) {
	anchor := n.Anchor
	if anchor == "" {
		anchor = AnchorStart
	}
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="%s" font-family="monospace" font-size="%d" fill="%s">%s</text>`,
		n.X, n.Y, anchor, n.Size, colorAttr(n.Fill), escape(n.Content))
}

// SVG serializes the document as a standalone SVG image, for browser
// inspection of a frame. The BMP path does not go through this markup; both
// are driven by the same node list.
func (d *Document) SVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		d.Width, d.Height, d.Width, d.Height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`+"\n", d.Width, d.Height, colorAttr(d.Background))
	for _, n := range d.Nodes {
		n.writeSVG(&b)
		b.WriteByte('\n')
	}
	b.WriteString("</svg>")
	return b.String()
}
