//go:build board_example

package boards

const SelectedVariant = Example
