//go:build tinygo && !(board_example || board_shadowolf1 || board_larsp || board_uiec || board_shadowolf2 || board_uiecv3 || board_petsd || board_petsdplus || board_petsdlite)

package boards

// Firmware must name its board. This declaration does not type-check on
// purpose: build with exactly one board_<name> tag.
const SelectedVariant Variant = "no board_* build tag selected"
