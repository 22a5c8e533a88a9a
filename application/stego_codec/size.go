package stego_codec

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// HumanSize renders a byte count with a binary unit suffix, e.g. "1.5 KB".
func HumanSize(n int64) string {
	printer := message.NewPrinter(language.English)
	if n < 1024 {
		return printer.Sprintf("%d %s", n, sizeUnits[0])
	}
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return printer.Sprintf("%.1f %s", value, sizeUnits[unit])
}
