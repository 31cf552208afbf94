package pdf

import (
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorDefaultAccent = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray          = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLightGray     = &props.Color{Red: 235, Green: 235, Blue: 235}
	colorWhite         = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorBlack         = &props.Color{Red: 0, Green: 0, Blue: 0}
)

// parseHexColor acepta "#rrggbb", "rrggbb" o "#rgb". Valores inválidos devuelven el acento por defecto.
func parseHexColor(s string) *props.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return colorDefaultAccent
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colorDefaultAccent
	}
	return &props.Color{Red: int(v >> 16 & 0xFF), Green: int(v >> 8 & 0xFF), Blue: int(v & 0xFF)}
}

// onAccent color de texto legible sobre el acento (luminancia simple).
func onAccent(c *props.Color) *props.Color {
	if c.Red*299+c.Green*587+c.Blue*114 > 150_000 {
		return colorBlack
	}
	return colorWhite
}
