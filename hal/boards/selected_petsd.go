//go:build board_petsd

package boards

const SelectedVariant = PetSD
