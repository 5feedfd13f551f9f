package printers

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ansi is the terminal palette accents are snapped to.
var ansi = []struct {
	hex  string
	attr color.Attribute
}{
	{"#000000", color.FgBlack},
	{"#cd0000", color.FgRed},
	{"#00cd00", color.FgGreen},
	{"#cdcd00", color.FgYellow},
	{"#0000ee", color.FgBlue},
	{"#cd00cd", color.FgMagenta},
	{"#00cdcd", color.FgCyan},
	{"#e5e5e5", color.FgWhite},
	{"#7f7f7f", color.FgHiBlack},
	{"#ff0000", color.FgHiRed},
	{"#00ff00", color.FgHiGreen},
	{"#ffff00", color.FgHiYellow},
	{"#5c5cff", color.FgHiBlue},
	{"#ff00ff", color.FgHiMagenta},
	{"#00ffff", color.FgHiCyan},
	{"#ffffff", color.FgHiWhite},
}

// Nearest returns the terminal color closest to hex, or FgWhite when hex
// does not parse.
func Nearest(hex string) color.Attribute {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.FgWhite
	}
	best, bestDist := color.FgWhite, math.MaxFloat64
	for _, a := range ansi {
		ac, _ := colorful.Hex(a.hex)
		if d := c.DistanceLab(ac); d < bestDist {
			best, bestDist = a.attr, d
		}
	}
	return best
}

// Swatch renders a colored block followed by the hex code.
func Swatch(hex string) string {
	if hex == "" {
		return faint.Sprint("-")
	}
	return color.New(Nearest(hex)).Sprint("██") + " " + hex
}

var bars = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values scaled between their minimum and maximum.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		i := len(bars) / 2
		if hi > lo {
			i = int(math.Round((v - lo) / (hi - lo) * float64(len(bars)-1)))
		}
		b.WriteRune(bars[i])
	}
	return b.String()
}

// Palette prints one swatch per line, marking current.
func (pp *PrettyPrint) Palette(palette []string, current string) {
	for _, hex := range palette {
		marker := "  "
		if hex == current {
			marker = okStyle.Sprint("▸ ")
		}
		_, _ = fmt.Fprintf(pp.Out, "%s%s\n", marker, Swatch(hex))
	}
}
