package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-survivor/internal/core"
)

// ansiCodes maps core.Color to terminal palette indexes.
var ansiCodes = [core.NumColors]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// palette holds one style per screen color, bound to a renderer. SSH
// sessions get their own renderer so color support follows the client
// terminal rather than the server's.
type palette struct {
	styles [core.NumColors]lipgloss.Style
	plain  lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) *palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &palette{plain: r.NewStyle()}
	for c, code := range ansiCodes {
		if code == "" {
			p.styles[c] = p.plain
			continue
		}
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

func (p *palette) style(c core.Color) lipgloss.Style {
	if c.Valid() {
		return p.styles[c]
	}
	return p.plain
}

// render converts the screen to styled text, one escape sequence per run of
// equally colored cells. Default-colored runs are written as-is.
func (p *palette) render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			c := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != c {
					break
				}
				run.WriteRune(cell.Rune)
			}
			if c == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(c).Render(run.String()))
		}
	}
	return sb.String()
}
