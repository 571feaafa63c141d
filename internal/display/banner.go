package display

import (
	"fmt"
	"os"

	"github.com/backmassage/scanmaster/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if logging.Cyan != "" {
		fmt.Fprint(os.Stdout, logging.Cyan)
	}
	fmt.Fprint(os.Stdout, ` ____                  __  __           _
/ ___|  ___ __ _ _ __ |  \/  | __ _ ___| |_ ___ _ __
\___ \ / __/ _`+"`"+` | '_ \| |\/| |/ _`+"`"+` / __| __/ _ \ '__|
 ___) | (_| (_| | | | | |  | | (_| \__ \ ||  __/ |
|____/ \___\__,_|_| |_|_|  |_|\__,_|___/\__\___|_|
`)
	if logging.Cyan != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
