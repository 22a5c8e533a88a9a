package mode

type Mode int

const (
	Unknown Mode = iota
	// HideText encrypts a message into a carrier
	HideText
	// RevealText recovers a message from a carrier
	RevealText
	// HideFile embeds a named file into a carrier
	HideFile
	// RevealFile extracts a named file from a carrier
	RevealFile
	// Capacity reports how much a carrier can hold
	Capacity
	// Version used to lookup version
	Version
)

func (m Mode) String() string {
	switch m {
	case HideText:
		return "hide-text"
	case RevealText:
		return "reveal-text"
	case HideFile:
		return "hide-file"
	case RevealFile:
		return "reveal-file"
	case Capacity:
		return "capacity"
	case Version:
		return "version"
	default:
		return "unknown"
	}
}
