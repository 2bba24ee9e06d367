package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	log := NewLoggerTo(&buf, false)
	log.Debugf("hidden %d", 1)
	log.Infof("entry %d/%d", 1, 3)
	log.Warnf("trailing newline kept\n")
	log.Errorf("failed: %v", "boom")

	require.Equal(t,
		"[INFO] entry 1/3\n"+
			"[WARN] trailing newline kept\n"+
			"[ERROR] failed: boom\n",
		buf.String(),
	)

	buf.Reset()
	log.Debug = true
	log.Debugf("shown")
	require.Equal(t, "[DEBUG] shown\n", buf.String())
}
