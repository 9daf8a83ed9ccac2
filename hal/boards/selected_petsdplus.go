//go:build board_petsdplus

package boards

const SelectedVariant = PetSDPlus
