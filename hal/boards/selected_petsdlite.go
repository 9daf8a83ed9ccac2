//go:build board_petsdlite

package boards

const SelectedVariant = PetSDLite
