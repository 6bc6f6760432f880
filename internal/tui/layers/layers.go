// Package layers provides utility functions for creating and managing UI layers
package layers

import "charm.land/lipgloss/v2"

// CreateCenteredLayer creates a layer positioned at the center of the screen.
// Returns nil if content is empty.
func CreateCenteredLayer(content string, screenWidth int, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	x := max((screenWidth-lipgloss.Width(content))/2, 0)
	y := max((screenHeight-lipgloss.Height(content))/2, 0)

	return lipgloss.NewLayer(content).X(x).Y(y)
}

// ModalSize returns the outer width and height of a modal for the given screen.
// The modal covers 3/4 of the screen, clamped to the modal limits, and never
// exceeds the screen itself.
func ModalSize(screenWidth, screenHeight int) (int, int) {
	width := screenWidth * ModalMaxNumerator / ModalMaxDivisor
	width = min(max(width, ModalMinWidth), ModalMaxWidth, screenWidth)

	height := screenHeight * ModalMaxNumerator / ModalMaxDivisor
	height = min(max(height, ModalMinHeight), screenHeight)

	return max(width, 1), max(height, 1)
}

// ContentSize returns the space inside a modal of the given outer size.
func ContentSize(width, height int) (int, int) {
	return max(width-ModalBorderPaddingWidth, 1), max(height-ModalBorderPaddingHeight, 1)
}
