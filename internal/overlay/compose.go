package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Place paints content over background with its top-left corner at origin.
// The background is padded to the viewport height and cropped to it; cells
// of the background outside the content box are kept, styling included.
func Place(background, content string, origin Point, viewport Size) string {
	if content == "" {
		return background
	}

	contentLines := strings.Split(content, "\n")
	width := measure(content).Width

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < viewport.Height {
		bgLines = append(bgLines, "")
	}

	for i, line := range contentLines {
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		row := origin.Y + i
		if row < 0 {
			continue
		}
		if row >= len(bgLines) {
			break
		}

		bg := bgLines[row]
		bgWidth := ansi.StringWidth(bg)

		left := ansi.Truncate(bg, origin.X, "")
		if pad := origin.X - bgWidth; pad > 0 {
			left += strings.Repeat(" ", pad)
		}

		right := ""
		end := origin.X + width
		if end < bgWidth {
			right = ansi.TruncateLeft(bg, end, "")
		}

		bgLines[row] = left + line + right
	}

	if viewport.Height > 0 && len(bgLines) > viewport.Height {
		bgLines = bgLines[:viewport.Height]
	}
	return strings.Join(bgLines, "\n")
}
