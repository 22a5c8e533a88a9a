package mode_selection

import "stegano/domain/mode"

// AppMode resolves the application's runtime mode and the arguments left
// for it.
type AppMode interface {
	Mode() (mode.Mode, error)
	Arguments() []string
}
