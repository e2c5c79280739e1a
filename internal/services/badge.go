package services

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const badgeSize = 256

var (
	badgeTrack    = color.NRGBA{R: 0xE5, G: 0xE7, B: 0xEB, A: 0xFF}
	badgeFallback = color.NRGBA{R: 0x11, G: 0x8A, B: 0xB2, A: 0xFF}
	badgeText     = color.NRGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}
)

// BadgeRenderer draws a progress ring for a user skill. The parsed font is
// shared; faces hold glyph buffers and are built per render.
type BadgeRenderer struct {
	font *truetype.Font
}

// NewBadgeRenderer loads the TTF at fontPath, or the bundled Go font when
// fontPath is empty.
func NewBadgeRenderer(fontPath string) (*BadgeRenderer, error) {
	fontBytes := goregular.TTF
	if p := strings.TrimSpace(fontPath); p != "" {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		fontBytes = raw
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return &BadgeRenderer{font: parsed}, nil
}

func (br *BadgeRenderer) newFace(size float64) font.Face {
	return truetype.NewFace(br.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
}

// Render returns a PNG. progress is clamped to 0..100.
func (br *BadgeRenderer) Render(progress int, hexColor, label string) ([]byte, error) {
	progress = clamp(progress, 0, 100)
	const (
		size  = float64(badgeSize)
		cx    = size / 2
		cy    = size / 2
		ring  = 22.0
		outer = size/2 - ring
	)

	dc := gg.NewContext(badgeSize, badgeSize)
	dc.SetColor(color.White)
	dc.DrawCircle(cx, cy, size/2)
	dc.Fill()

	dc.SetLineWidth(ring)
	dc.SetLineCapRound()
	dc.SetColor(badgeTrack)
	dc.DrawCircle(cx, cy, outer)
	dc.Stroke()

	if progress > 0 {
		start := -math.Pi / 2
		end := start + 2*math.Pi*float64(progress)/100
		dc.SetColor(parseColor(hexColor))
		dc.DrawArc(cx, cy, outer, start, end)
		dc.Stroke()
	}

	dc.SetColor(badgeText)
	dc.SetFontFace(br.newFace(56))
	dc.DrawStringAnchored(fmt.Sprintf("%d%%", progress), cx, cy-6, 0.5, 0.5)
	if label = strings.TrimSpace(label); label != "" {
		dc.SetFontFace(br.newFace(18))
		dc.DrawStringAnchored(label, cx, cy+38, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func parseColor(hexStr string) color.NRGBA {
	s := strings.TrimPrefix(strings.TrimSpace(hexStr), "#")
	if len(s) != 6 {
		return badgeFallback
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return badgeFallback
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xFF}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
