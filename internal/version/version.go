package version

import (
	"fmt"
	"io"
	"runtime"
)

const (
	Version = "0.1.0"
)

// ShowVersion prints the version line of the goshinden binary
func ShowVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Goshinden v%s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
