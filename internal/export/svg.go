// Package export renders recorded trajectories as standalone SVG files.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/gravsim/internal/physics"
)

var strokeColors = []string{
	"#00ff88", "#ff8800", "#00aaff", "#ff00aa", "#ffee00", "#aa66ff",
}

// TrajectoriesToSVG draws the x-y projection of one path per body on a
// dark background, all paths sharing the same bounds.
func TrajectoriesToSVG(trails [][]physics.Vec3, width, height int) string {
	minX, maxX, minY, maxY := bounds(trails)
	if minX > maxX {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for b, trail := range trails {
		if len(trail) < 2 {
			continue
		}
		color := strokeColors[b%len(strokeColors)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.2" d="M`, color))
		for i, p := range trail {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// SaveTrajectories writes the SVG to path.
func SaveTrajectories(path string, trails [][]physics.Vec3, width, height int) error {
	svg := TrajectoriesToSVG(trails, width, height)
	if svg == "" {
		return fmt.Errorf("nothing to export: need at least one trail with two points")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func bounds(trails [][]physics.Vec3) (minX, maxX, minY, maxY float64) {
	first := true
	for _, trail := range trails {
		for _, p := range trail {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	if first {
		return 1, 0, 1, 0
	}
	return minX, maxX, minY, maxY
}
