//go:build board_uiec

package boards

const SelectedVariant = UIEC
