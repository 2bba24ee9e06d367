package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

type Stats struct {
	Written    atomic.Int64
	Duplicates atomic.Int64
	Empty      atomic.Int64
	Failed     atomic.Int64
}

func (s *Stats) Print(w io.Writer, title string, elapsed time.Duration) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s Summary:\n", title)
	_, _ = fmt.Fprintf(w, "Written:    %d\n", s.Written.Load())
	_, _ = fmt.Fprintf(w, "Duplicates: %d\n", s.Duplicates.Load())
	_, _ = fmt.Fprintf(w, "Empty:      %d\n", s.Empty.Load())
	_, _ = fmt.Fprintf(w, "Failed:     %d\n", s.Failed.Load())
	_, _ = fmt.Fprintf(w, "Time:       %s\n", elapsed.Round(time.Second))
}
