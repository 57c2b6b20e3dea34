package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dasdy/nuhxboard/frame"
	"github.com/dasdy/nuhxboard/model"
)

// PathData renders a closed path as SVG path data.
func PathData(p model.Path) string {
	var sb strings.Builder

	for i, point := range p.Points {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}

		fmt.Fprintf(&sb, "%.2f %.2f", point.X, point.Y)
	}

	if len(p.Points) > 0 {
		sb.WriteString(" Z")
	}

	return sb.String()
}

func Coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func Dimension(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func ViewBox(f *frame.Frame) string {
	return "0 0 " + Coord(f.Width) + " " + Coord(f.Height)
}

func FontWeight(w model.Weight) string {
	return w.String()
}

func FontStretch(s model.Stretch) string {
	return s.String()
}
