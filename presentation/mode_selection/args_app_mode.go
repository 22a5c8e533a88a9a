package mode_selection

import (
	"stegano/domain/mode"
	"strings"
)

type ArgsAppMode struct {
	arguments []string
}

func NewArgsAppMode(arguments []string) AppMode {
	return &ArgsAppMode{
		arguments: arguments,
	}
}

// Mode reads the subcommand from the first argument after the binary path.
// Short forms follow the "ht"/"rt"/"hf"/"rf" pattern.
func (a *ArgsAppMode) Mode() (mode.Mode, error) {
	if len(a.arguments) == 0 {
		return mode.Unknown, mode.NewInvalidExecPathProvided()
	}

	if len(a.arguments) < 2 {
		return mode.Unknown, mode.NewNoModeProvided()
	}

	modeArgument := strings.TrimSpace(strings.ToLower(a.arguments[1]))
	switch modeArgument {
	case "hide-text", "ht":
		return mode.HideText, nil
	case "reveal-text", "rt":
		return mode.RevealText, nil
	case "hide-file", "hf":
		return mode.HideFile, nil
	case "reveal-file", "rf":
		return mode.RevealFile, nil
	case "capacity", "cap":
		return mode.Capacity, nil
	case "version", "--version", "-v":
		return mode.Version, nil
	default:
		return mode.Unknown, mode.NewInvalidModeProvided(modeArgument)
	}
}

// Arguments returns what follows the subcommand.
func (a *ArgsAppMode) Arguments() []string {
	if len(a.arguments) < 3 {
		return nil
	}
	return a.arguments[2:]
}
