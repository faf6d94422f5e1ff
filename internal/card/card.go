// Package card renders a decoded cheat listing as a WebP "code card".
package card

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"armax-decoder/internal/armax"
	"armax-decoder/internal/cheatlist"
)

const (
	padding    = 8
	lineHeight = 15
	maxColumns = 48
)

var (
	fillColor    = color.NRGBA{0x18, 0x1C, 0x24, 0xFF}
	titleColor   = color.NRGBA{0xFF, 0xD0, 0x60, 0xFF}
	nameColor    = color.NRGBA{0x9C, 0xD8, 0xFF, 0xFF}
	codeColor    = color.NRGBA{0xF0, 0xF0, 0xF0, 0xFF}
	commentColor = color.NRGBA{0x90, 0x98, 0xA0, 0xFF}
	errorColor   = color.NRGBA{0xFF, 0x70, 0x70, 0xFF}
)

// Options controls card layout.
type Options struct {
	// Scale is the integer upscale factor applied last. Values below 1 mean 1.
	Scale int
	// Background, when set, is stretched behind the text.
	Background image.Image
}

type line struct {
	text string
	col  color.Color
}

// Render draws the game's title and each cheat with its raw code lines.
func Render(g cheatlist.Game, opt Options) *image.NRGBA {
	lines := layout(g)

	face := basicfont.Face7x13
	width := 0
	for _, l := range lines {
		if w := font.MeasureString(face, l.text).Ceil(); w > width {
			width = w
		}
	}
	w := width + 2*padding
	h := len(lines)*lineHeight + 2*padding

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if opt.Background != nil {
		draw.CatmullRom.Scale(img, img.Bounds(), opt.Background, opt.Background.Bounds(), draw.Src, nil)
	} else {
		draw.Draw(img, img.Bounds(), image.NewUniform(fillColor), image.Point{}, draw.Src)
	}

	d := font.Drawer{Dst: img, Face: face}
	for i, l := range lines {
		if l.text == "" {
			continue
		}
		d.Src = image.NewUniform(l.col)
		d.Dot = fixed.P(padding, padding+i*lineHeight+face.Ascent)
		d.DrawString(l.text)
	}

	return Upscale(img, opt.Scale)
}

func layout(g cheatlist.Game) []line {
	title := g.Name
	if title == "" {
		title = "Untitled"
	}
	lines := []line{
		{clip(title), titleColor},
		{fmt.Sprintf("Game ID %03X  %s", g.ID, g.Region), commentColor},
	}
	for _, c := range g.Cheats {
		lines = append(lines, line{}, line{clip(c.Name), nameColor})
		if c.Comment != "" {
			for _, s := range strings.Split(c.Comment, "\n") {
				lines = append(lines, line{clip("# " + s), commentColor})
			}
		}
		if c.State == cheatlist.Failed {
			lines = append(lines, line{clip(fmt.Sprintf("error: %v", c.Err)), errorColor})
			continue
		}
		for i := 0; i+1 < len(c.Codes); i += 2 {
			col := codeColor
			if i < c.VerifierWords {
				col = commentColor
			}
			lines = append(lines, line{armax.FormatRaw(c.Codes[i], c.Codes[i+1]), col})
		}
	}
	return lines
}

// clip keeps long names and errors from widening the card.
func clip(s string) string {
	r := []rune(s)
	if len(r) <= maxColumns {
		return s
	}
	return string(r[:maxColumns-3]) + "..."
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling
// so the bitmap font stays sharp.
func Upscale(img *image.NRGBA, scale int) *image.NRGBA {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
