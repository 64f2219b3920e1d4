// seehuhn.de/go/folio - page annotations for document viewers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package annotation

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor converts a colour specifier into a non-premultiplied colour.
//
// Accepted forms are "#rgb", "#rgba", "#rrggbb", "#rrggbbaa",
// "rgb(r, g, b)", "rgba(r, g, b, a)" with a in [0, 1], and the SVG colour
// keywords such as "red" or "cornflowerblue".  Matching is case-insensitive.
func ParseColor(s string) (color.NRGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(spec, "#"):
		return parseHex(spec[1:], s)
	case strings.HasPrefix(spec, "rgba(") && strings.HasSuffix(spec, ")"):
		return parseFunc(spec[5:len(spec)-1], 4, s)
	case strings.HasPrefix(spec, "rgb(") && strings.HasSuffix(spec, ")"):
		return parseFunc(spec[4:len(spec)-1], 3, s)
	case spec == "transparent":
		return color.NRGBA{}, nil
	}

	if c, ok := colornames.Map[spec]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
}

func parseHex(hex, orig string) (color.NRGBA, error) {
	var digits [8]uint8
	if len(hex) != 3 && len(hex) != 4 && len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", orig)
	}
	for i := range len(hex) {
		v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid colour %q", orig)
		}
		digits[i] = uint8(v)
	}

	c := color.NRGBA{A: 255}
	switch len(hex) {
	case 3, 4:
		c.R = digits[0] * 17
		c.G = digits[1] * 17
		c.B = digits[2] * 17
		if len(hex) == 4 {
			c.A = digits[3] * 17
		}
	case 6, 8:
		c.R = digits[0]<<4 | digits[1]
		c.G = digits[2]<<4 | digits[3]
		c.B = digits[4]<<4 | digits[5]
		if len(hex) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
	}
	return c, nil
}

func parseFunc(args string, n int, orig string) (color.NRGBA, error) {
	fields := strings.Split(args, ",")
	if len(fields) != n {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", orig)
	}

	var v [4]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(x) {
			return color.NRGBA{}, fmt.Errorf("invalid colour %q", orig)
		}
		v[i] = x
	}

	channel := func(x float64) uint8 {
		return uint8(math.Round(max(0, min(255, x))))
	}
	c := color.NRGBA{R: channel(v[0]), G: channel(v[1]), B: channel(v[2]), A: 255}
	if n == 4 {
		c.A = channel(v[3] * 255)
	}
	return c, nil
}
