//go:build board_larsp

package boards

const SelectedVariant = LarsP
