//go:build board_shadowolf1

package boards

const SelectedVariant = Shadowolf1
