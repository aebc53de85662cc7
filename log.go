package kepler

import (
	"io"

	kitlog "github.com/go-kit/kit/log"
)

// NewLogger returns a logfmt logger safe for concurrent use, tagged with the provided name.
func NewLogger(w io.Writer, name string) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	return kitlog.With(klog, "orbit", name)
}
