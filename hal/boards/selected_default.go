//go:build !tinygo && !(board_example || board_shadowolf1 || board_larsp || board_uiec || board_shadowolf2 || board_uiecv3 || board_petsd || board_petsdplus || board_petsdlite)

package boards

// Host builds without a board tag get the reference layout so tools and tests
// compile.
const SelectedVariant = Example
