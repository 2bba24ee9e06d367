package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatsPrint(t *testing.T) {
	var s Stats
	s.Written.Add(12)
	s.Duplicates.Add(3)
	s.Failed.Add(1)

	var buf bytes.Buffer
	s.Print(&buf, "Carus", 90*time.Second+400*time.Millisecond)

	out := buf.String()
	require.Contains(t, out, "Carus Summary:")
	require.Contains(t, out, "Written:    12\n")
	require.Contains(t, out, "Duplicates: 3\n")
	require.Contains(t, out, "Empty:      0\n")
	require.Contains(t, out, "Failed:     1\n")
	require.Contains(t, out, "Time:       1m30s\n")
}

func TestProgressHandleFinishes(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManager(&buf)

	h := pm.Register("Authors", "songs", 3)
	h.Increment()
	h.MarkDone()
	// no-ops once final
	h.Increment()
	h.Abort()

	pm.Close()
	require.True(t, h.final.Load())
}
