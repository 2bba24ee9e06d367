package csvout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var header = []string{"Komponist", "Titel", "Tonart"}

func TestOpenWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	w, err := Open(path, header, Options{Append: true, Sync: true})
	require.NoError(t, err)
	require.NoError(t, w.Write([]string{"Bach, Johann Sebastian", "Wachet auf", "Es"}))
	require.Equal(t, 1, w.Rows())
	require.NoError(t, w.Close())

	w, err = Open(path, header, Options{Append: true})
	require.NoError(t, err)
	require.NoError(t, w.Write([]string{"Praetorius, Michael", "Es ist ein Ros entsprungen", "F"}))
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"Komponist;Titel;Tonart\r\n"+
			"Bach, Johann Sebastian;Wachet auf;Es\r\n"+
			"Praetorius, Michael;Es ist ein Ros entsprungen;F\r\n",
		string(b),
	)
}

func TestOpenTruncatesWithoutAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old;content\n"), 0644))

	w, err := Open(path, []string{"Nr", "Titel"}, Options{BOM: true})
	require.NoError(t, err)
	require.NoError(t, w.Write([]string{"1", "Macht hoch die Tür"}))
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "\ufeffNr;Titel\r\n1;Macht hoch die Tür\r\n", string(b))
}

func TestQuotesDelimiterInsideField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	w, err := Open(path, nil, Options{})
	require.NoError(t, err)
	require.NoError(t, w.Write([]string{"Lk 1; Bibelstelle: Jes 9", "x"}))
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "\"Lk 1; Bibelstelle: Jes 9\";x\r\n", string(b))
}

func TestAppendKeepsCRLFLineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	existing := "Komponist;Titel;Tonart\r\nBach, Johann Sebastian;Wachet auf;Es\r\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0644))

	w, err := Open(path, header, Options{Append: true})
	require.NoError(t, err)
	require.NoError(t, w.Write([]string{"Schütz, Heinrich", "Also hat Gott die Welt geliebt", "g"}))
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, existing+"Schütz, Heinrich;Also hat Gott die Welt geliebt;g\r\n", string(b))
}

func TestLoadKeys(t *testing.T) {
	dir := t.TempDir()

	missing, err := LoadKeys(filepath.Join(dir, "missing.csv"), header)
	require.NoError(t, err)
	require.Empty(t, missing)

	path := filepath.Join(dir, "existing.csv")
	content := "\ufeffKomponist;Titel\n" +
		"Bach,  Johann Sebastian ;Wachet auf\n" +
		"Praetorius, Michael;Es ist ein Ros entsprungen\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	seen, err := LoadKeys(path, header)
	require.NoError(t, err)
	require.Len(t, seen, 2)
	require.True(t, seen[Key("Bach, Johann Sebastian", "Wachet auf", "")])
	require.True(t, seen[Key("Praetorius, Michael", "Es ist ein Ros entsprungen", "")])
	require.False(t, seen[Key("Praetorius, Michael", "Es ist ein Ros entsprungen", "F")])
}

func TestLoadKeysEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	seen, err := LoadKeys(path, header)
	require.NoError(t, err)
	require.Empty(t, seen)
}
