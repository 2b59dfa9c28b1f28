package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Shared layout metrics for the simple centered templates.
const (
	pagePad    = 40
	centerX    = CanvasWidth / 2
	footerY    = 450
	footerRule = 420
)

func buildClock(config map[string]any, opts Options) *Document {
	now := opts.Now.In(opts.location())

	layout := "15:04"
	if configString(config, "format", "12h") == "12h" {
		layout = "3:04 PM"
	}

	d := NewDocument()
	d.Add(
		Text{X: centerX, Y: 250, Content: now.Format(layout), Size: 112, Anchor: AnchorMiddle, Fill: Black},
		Text{X: centerX, Y: 330, Content: now.Format("Mon, Jan 2"), Size: 35, Anchor: AnchorMiddle, Fill: Black},
	)
	addDeviceFooter(d, opts)
	return d
}

func buildWeather(config map[string]any, opts Options) *Document {
	location := configString(config, "location", "Unknown location")
	temperature := configString(config, "temperature", "72°F")
	condition := configString(config, "condition", "Sunny")

	d := NewDocument()
	d.Add(
		Text{X: centerX, Y: 120, Content: location, Size: 35, Anchor: AnchorMiddle, Fill: Black},
		Text{X: centerX, Y: 270, Content: temperature, Size: 98, Anchor: AnchorMiddle, Fill: Black},
		Text{X: centerX, Y: 340, Content: condition, Size: 35, Anchor: AnchorMiddle, Fill: Black},
	)
	addDeviceFooter(d, opts)
	return d
}

func buildQuote(config map[string]any, opts Options) *Document {
	quote := configString(config, "quote", "The best way to predict the future is to invent it.")
	author := configString(config, "author", "Alan Kay")

	d := NewDocument()

	lines := wrapText(quote, 38)
	const lineH = 42
	startY := CanvasHeight/2 - (len(lines)-1)*lineH/2 - 40
	for i, line := range lines {
		d.Add(Text{X: centerX, Y: startY + i*lineH, Content: line, Size: 28, Anchor: AnchorMiddle, Fill: Black})
	}
	d.Add(Text{X: centerX, Y: startY + len(lines)*lineH + 30, Content: "- " + author, Size: 21, Anchor: AnchorMiddle, Fill: Dark})
	addDeviceFooter(d, opts)
	return d
}

func buildCustom(config map[string]any, opts Options) *Document {
	title := configString(config, "title", "")
	content := configString(config, "content", "")
	bg := parseColorToken(configString(config, "backgroundColor", "#FFFFFF"))
	fg := parseColorToken(configString(config, "textColor", "#000000"))

	d := NewDocument()
	d.Background = bg

	y := 120
	if title != "" {
		d.Add(Text{X: centerX, Y: y, Content: title, Size: 42, Anchor: AnchorMiddle, Fill: fg})
		y += 70
	}
	for _, line := range wrapText(content, 48) {
		d.Add(Text{X: centerX, Y: y, Content: line, Size: 21, Anchor: AnchorMiddle, Fill: fg})
		y += 32
	}
	return d
}

func buildDefault(opts Options) *Document {
	name := opts.FriendlyID
	if name == "" {
		name = "your device"
	}

	d := NewDocument()
	d.Add(
		Rect{X: centerX - 60, Y: 90, W: 120, H: 70, Fill: White, Stroke: Black, StrokeWidth: 4},
		Rect{X: centerX - 46, Y: 104, W: 92, H: 42, Fill: Black},
		Text{X: centerX, Y: 240, Content: "Welcome to inkhaus", Size: 42, Anchor: AnchorMiddle, Fill: Black},
		Text{X: centerX, Y: 300, Content: name, Size: 28, Anchor: AnchorMiddle, Fill: Black},
		Text{X: centerX, Y: 360, Content: "Add a screen in the dashboard to get started", Size: 21, Anchor: AnchorMiddle, Fill: Dark},
		Line{X1: pagePad, Y1: footerRule, X2: CanvasWidth - pagePad, Y2: footerRule, Stroke: Black, StrokeWidth: 2},
		Text{X: centerX, Y: footerY, Content: opts.Now.In(opts.location()).Format("2006-01-02"), Size: 14, Anchor: AnchorMiddle, Fill: Muted},
	)
	return d
}

// addDeviceFooter draws the thin rule and device label common to the
// simple templates.
func addDeviceFooter(d *Document, opts Options) {
	label := opts.DeviceName
	if label == "" {
		label = opts.FriendlyID
	}
	if label == "" {
		return
	}
	d.Add(
		Line{X1: pagePad, Y1: footerRule, X2: CanvasWidth - pagePad, Y2: footerRule, Stroke: Black, StrokeWidth: 2},
		Text{X: centerX, Y: footerY, Content: label, Size: 14, Anchor: AnchorMiddle, Fill: Muted},
	)
}

// wrapText splits s into lines of at most width glyph cells, breaking on
// spaces. Overlong words are hard-split. Widths count runes, not bytes:
// quote and custom text is arbitrary user input and a multi-byte rune must
// never be cut in half.
func wrapText(s string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		line := ""
		lineLen := 0
		for _, w := range words {
			wordLen := utf8.RuneCountInString(w)
			for wordLen > width {
				if line != "" {
					lines = append(lines, line)
					line, lineLen = "", 0
				}
				runes := []rune(w)
				lines = append(lines, string(runes[:width]))
				w = string(runes[width:])
				wordLen -= width
			}
			switch {
			case line == "":
				line, lineLen = w, wordLen
			case lineLen+1+wordLen <= width:
				line += " " + w
				lineLen += 1 + wordLen
			default:
				lines = append(lines, line)
				line, lineLen = w, wordLen
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// parseColorToken converts a validated #RRGGBB token to a gray paint level
// using the Rec.601 luma weights. Anything malformed falls back to white.
func parseColorToken(token string) Gray {
	if len(token) != 7 || token[0] != '#' {
		return White
	}
	var r, g, b int
	if _, err := fmt.Sscanf(token[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return White
	}
	return Gray((299*r + 587*g + 114*b) / 1000)
}

// formatHM renders a timestamp as 24h HH:MM for event rows.
func formatHM(t time.Time) string {
	return t.Format("15:04")
}
