package common

import (
	"github.com/olekukonko/ts"
)

const defaultTerminalWidth = 80

// TerminalWidth returns the width of the controlling terminal, falling
// back to 80 columns when it cannot be determined
func TerminalWidth() int {
	size, err := ts.GetSize()
	if err != nil || size.Col() <= 0 {
		return defaultTerminalWidth
	}
	return size.Col()
}
