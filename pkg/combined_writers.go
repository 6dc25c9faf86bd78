package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter tees writes to several writers. A failing writer does not
// stop the others; its error is merged into the returned one and kept in Err.
type CombinedWriter struct {
	Writers []io.Writer
	Err     error
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n += written
	}
	if err != nil {
		cw.Err = multierr.Append(cw.Err, err)
	}
	return n, err
}
