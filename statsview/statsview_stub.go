//go:build !statsview
// +build !statsview

package statsview

import (
	"fmt"
	"io"
)

// Launch reports that the stats server was not compiled in.
func Launch(output io.Writer) {
	fmt.Fprintln(output, "stats server not available, build with -tags statsview")
}

// Available reports whether the binary was built with the stats server.
func Available() bool {
	return false
}
