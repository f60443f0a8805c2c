package ui

import (
	"fmt"
	"strings"
)

// renderRoundBar draws how much of the current traversal order has been shown.
func renderRoundBar(shown, total, width int) string {
	if width < 10 {
		width = 10
	}
	label := fmt.Sprintf(" %d/%d", shown, total)
	barWidth := width - len(label)
	if barWidth < 1 {
		barWidth = 1
	}

	var ratio float64
	if total > 0 {
		ratio = float64(shown) / float64(total)
	}
	ratio = clamp01(ratio)

	filled := int(ratio * float64(barWidth))
	return strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled) + label
}
