//go:build board_uiecv3

package boards

const SelectedVariant = UIECv3
