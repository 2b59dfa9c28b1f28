package render

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestSVG_EscapesFreeText(t *testing.T) {
	d := NewDocument()
	d.Add(Text{X: 10, Y: 20, Content: `<script>"a" & 'b'</script>`, Size: 14})

	svg := d.SVG()
	if strings.Contains(svg, "<script>") {
		t.Error("markup injected through text content")
	}
	for _, want := range []string{"&lt;script&gt;", "&quot;a&quot;", "&amp;", "&apos;b&apos;"} {
		if !strings.Contains(svg, want) {
			t.Errorf("escaped output missing %q", want)
		}
	}
}

func TestSVG_DocumentShape(t *testing.T) {
	d := NewDocument()
	d.Add(
		Rect{X: 1, Y: 2, W: 3, H: 4, Fill: Black},
		Circle{CX: 5, CY: 6, R: 7, Fill: White, Stroke: Black, StrokeWidth: 2},
		Line{X1: 0, Y1: 0, X2: 10, Y2: 0, Stroke: Black},
	)
	svg := d.SVG()

	for _, want := range []string{
		`<svg width="800" height="480"`,
		`<rect x="1" y="2" width="3" height="4"`,
		`<circle cx="5" cy="6" r="7"`,
		`stroke-width="2"`,
		`<line x1="0" y1="0" x2="10" y2="0"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestBuild_QuoteEscapedInSVG(t *testing.T) {
	doc, err := Build("quote", map[string]any{
		"quote":  `He said "<b>hi</b>"`,
		"author": "A & B",
	}, Options{Now: time.Unix(1700000000, 0)})
	if err != nil {
		t.Fatal(err)
	}
	svg := doc.SVG()
	if strings.Contains(svg, "<b>") {
		t.Error("user markup not escaped")
	}
	if !strings.Contains(svg, "A &amp; B") {
		t.Error("author not escaped/rendered")
	}
}

func TestBuild_UnknownKind(t *testing.T) {
	if _, err := Build("hologram", nil, Options{}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBuild_ClockFormats(t *testing.T) {
	now := time.Date(2026, 3, 11, 15, 4, 0, 0, time.UTC)

	doc12, err := Build("clock", map[string]any{"format": "12h"}, Options{Now: now})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc12.SVG(), "3:04 PM") {
		t.Error("12h clock missing 3:04 PM")
	}

	doc24, err := Build("clock", map[string]any{"format": "24h"}, Options{Now: now})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc24.SVG(), "15:04") {
		t.Error("24h clock missing 15:04")
	}
}

func TestBuild_WeatherDefaults(t *testing.T) {
	doc, err := Build("weather", nil, Options{Now: time.Unix(1700000000, 0)})
	if err != nil {
		t.Fatal(err)
	}
	svg := doc.SVG()
	for _, want := range []string{"Unknown location", "72°F", "Sunny"} {
		if !strings.Contains(svg, want) {
			t.Errorf("weather defaults missing %q", want)
		}
	}
}

func TestBuild_CustomColors(t *testing.T) {
	doc, err := Build("custom", map[string]any{
		"title":           "Note",
		"content":         "Water the plants",
		"backgroundColor": "#000000",
		"textColor":       "#FFFFFF",
	}, Options{Now: time.Unix(1700000000, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Background != Black {
		t.Errorf("background = %d, want black", doc.Background)
	}
	img := Rasterize(doc)
	if img.GrayAt(2, 2).Y != 0 {
		t.Error("corner should be painted with background color")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("the quick brown fox jumps over the lazy dog", 12)
	for _, l := range lines {
		if len(l) > 12 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("wrap lost content: %v", lines)
	}

	long := wrapText("abcdefghijklmnop", 5)
	if long[0] != "abcde" {
		t.Errorf("overlong word not hard-split: %v", long)
	}
}

func TestWrapText_MultiByteRunes(t *testing.T) {
	// A 50-rune word of 2-byte runes must hard-split on rune boundaries.
	word := strings.Repeat("é", 50)
	lines := wrapText(word, 15)

	var total int
	for _, l := range lines {
		if !utf8.ValidString(l) {
			t.Fatalf("line %q is not valid UTF-8", l)
		}
		n := utf8.RuneCountInString(l)
		if n > 15 {
			t.Errorf("line %q has %d runes, want <= 15", l, n)
		}
		total += n
	}
	if total != 50 {
		t.Errorf("wrap lost runes: got %d, want 50", total)
	}
	if strings.Join(lines, "") != word {
		t.Error("hard split changed content")
	}

	// Mixed-width words fill lines by rune count, not byte count.
	lines = wrapText("日本語 テスト", 7)
	if len(lines) != 1 || lines[0] != "日本語 テスト" {
		t.Errorf("7-rune line split unnecessarily: %v", lines)
	}
}

func TestMeasureText(t *testing.T) {
	if got := measureText("", 14); got != 0 {
		t.Errorf("empty measure = %d, want 0", got)
	}
	// size 14 -> scale 2: 3 chars * 12 - 2 = 34.
	if got := measureText("abc", 14); got != 34 {
		t.Errorf("measure = %d, want 34", got)
	}
}

func TestRasterize_TextMarksPixels(t *testing.T) {
	d := NewDocument()
	d.Add(Text{X: 100, Y: 100, Content: "8", Size: 70, Fill: Black})
	img := Rasterize(d)

	var inked int
	for y := 0; y < CanvasHeight; y++ {
		for x := 0; x < CanvasWidth; x++ {
			if img.GrayAt(x, y).Y == 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatal("glyph drew no pixels")
	}
}

func TestParseColorToken(t *testing.T) {
	if parseColorToken("#FFFFFF") != White {
		t.Error("#FFFFFF should be white")
	}
	if parseColorToken("#000000") != Black {
		t.Error("#000000 should be black")
	}
	if parseColorToken("garbage") != White {
		t.Error("malformed token should fall back to white")
	}
}
