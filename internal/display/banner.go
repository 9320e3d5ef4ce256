package display

import (
	"fmt"
	"os"

	"github.com/backmassage/loudcheck/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, "\033[1;96m")
	}
	fmt.Fprint(os.Stdout, ` _                    _  ____ _               _
| |    ___  _   _  __| |/ ___| |__   ___  ___| | __
| |   / _ \| | | |/ _`+"`"+` | |   | '_ \ / _ \/ __| |/ /
| |__| (_) | |_| | (_| | |___| | | |  __/ (__|   <
|_____\___/ \__,_|\__,_|\____|_| |_|\___|\___|_|\_\
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
