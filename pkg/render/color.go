package render

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vanderheijden86/sunburst/pkg/debug"
)

var (
	colorFallback = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	colorText     = color.RGBA{0x00, 0x00, 0x00, 0xff}
	colorStroke   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorBackdrop = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// fill returns the CSS fill for a colour token. Tokens are passed through
// untouched so any CSS colour works; only tokens that would break out of a
// style attribute are replaced by their parsed value.
func fill(token string) string {
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, ";:\"'<>&{}\n\r") {
		return css(parseColor(token))
	}
	return token
}

// parseColor resolves a colour token for raster output. Hex tokens (#rgb or
// #rrggbb) and a handful of CSS names are understood; anything else falls
// back to grey.
func parseColor(token string) color.RGBA {
	if c, err := colorful.Hex(expandHex(token)); err == nil {
		r, g, b := c.RGB255()
		return color.RGBA{r, g, b, 0xff}
	}
	if c, ok := namedColors[token]; ok {
		return c
	}
	debug.Log("render: unknown colour token %q", token)
	return colorFallback
}

// expandHex turns #rgb into #rrggbb.
func expandHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

var namedColors = map[string]color.RGBA{
	"white":  {0xff, 0xff, 0xff, 0xff},
	"black":  {0x00, 0x00, 0x00, 0xff},
	"red":    {0xff, 0x00, 0x00, 0xff},
	"green":  {0x00, 0x80, 0x00, 0xff},
	"blue":   {0x00, 0x00, 0xff, 0xff},
	"orange": {0xff, 0xa5, 0x00, 0xff},
	"gray":   {0x80, 0x80, 0x80, 0xff},
	"grey":   {0x80, 0x80, 0x80, 0xff},
}

// withOpacity returns c with its alpha scaled by opacity, non-premultiplied.
func withOpacity(c color.RGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(opacity*255 + 0.5)}
}

func css(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}
