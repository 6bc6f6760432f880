package layers

const (
	ModalMinWidth  = 40
	ModalMaxWidth  = 100
	ModalMinHeight = 10

	// modals take at most 3/4 of the screen
	ModalMaxNumerator = 3
	ModalMaxDivisor   = 4

	ModalBorderPaddingWidth  = 6 // border + horizontal padding
	ModalBorderPaddingHeight = 4 // border + vertical padding + footer
)
