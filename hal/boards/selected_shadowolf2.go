//go:build board_shadowolf2

package boards

const SelectedVariant = Shadowolf2
