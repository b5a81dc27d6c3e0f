package songlist

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func writeSong(t *testing.T, dir, name, key string) {
	t.Helper()
	doc := fmt.Sprintf("<song><title>%s</title><lyrics>.C\n words</lyrics><key>%s</key></song>", name, key)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0666); err != nil {
		t.Fatal(err)
	}
}

func setup(t *testing.T) (string, string) {
	dir := t.TempDir()
	writeSong(t, dir, "one.xml", "C")
	writeSong(t, dir, "two.xml", "G")
	writeSong(t, dir, "three.xml", "Bb")
	listPath := filepath.Join(dir, "list.json")
	data := `[["one.xml", 0], ["missing.xml", 3], ["two.xml", 14], ["three.xml", -1]]`
	if err := os.WriteFile(listPath, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	return dir, listPath
}

func load(t *testing.T) *List {
	dir, listPath := setup(t)
	l, err := Load(listPath, dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLoad(t *testing.T) {
	dir, listPath := setup(t)
	l, err := Load(listPath, dir)

	assert := assert.New(t)
	assert.NoError(err)
	entries := l.Entries()
	assert.Len(entries, 3)
	assert.Equal("one.xml", entries[0].Path)
	assert.Equal("G", entries[1].Song.Key)
	assert.Equal(2, entries[1].Offset)
	assert.Equal(11, entries[2].Offset)
	assert.NotEqual(entries[0].ID, entries[1].ID)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "nope.json"), "")
	assert.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestLoadRejectsBadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	assert.NoError(t, os.WriteFile(path, []byte(`[["one.xml"]]`), 0666))
	_, err := Load(path, "")
	assert.Error(t, err)
}

func TestTransposeWraps(t *testing.T) {
	l := load(t)

	assert := assert.New(t)
	id := l.Entries()[2].ID

	e, err := l.Transpose(id, 1)
	assert.NoError(err)
	assert.Equal(0, e.Offset)

	e, err = l.Transpose(id, -1)
	assert.NoError(err)
	assert.Equal(11, e.Offset)

	e, err = l.Transpose(id, -25)
	assert.NoError(err)
	assert.Equal(10, e.Offset)

	_, err = l.Transpose("nope", 1)
	assert.True(errors.Is(err, ErrNotFound))
}

func TestNavigationWraps(t *testing.T) {
	l := load(t)

	assert := assert.New(t)
	cur, ok := l.Current()
	assert.True(ok)
	assert.Equal("one.xml", cur.Path)

	prev, _ := l.Prev()
	assert.Equal("three.xml", prev.Path)
	next, _ := l.Next()
	assert.Equal("one.xml", next.Path)
	next, _ = l.Next()
	assert.Equal("two.xml", next.Path)

	assert.NoError(l.Select(l.Entries()[2].ID))
	next, _ = l.Next()
	assert.Equal("one.xml", next.Path)

	_, ok = New("", "").Next()
	assert.False(ok)
}

func TestSaveRoundTrip(t *testing.T) {
	l := load(t)

	assert := assert.New(t)
	_, err := l.Transpose(l.Entries()[0].ID, 5)
	assert.NoError(err)
	assert.NoError(l.Remove(l.Entries()[1].ID))
	assert.NoError(l.Save())

	dat, err := os.ReadFile(l.path)
	assert.NoError(err)
	assert.JSONEq(`[["one.xml", 5], ["three.xml", 11]]`, string(dat))
}

func TestAutosave(t *testing.T) {
	l := load(t)

	assert := assert.New(t)
	id := l.Entries()[0].ID
	for i := 0; i < 3; i++ {
		_, err := l.Transpose(id, 1)
		assert.NoError(err)
	}

	assert.Eventually(func() bool {
		dat, err := os.ReadFile(l.path)
		return err == nil && compact(dat) == `[["one.xml",3],["two.xml",2],["three.xml",11]]`
	}, 5*time.Second, 50*time.Millisecond)
}

func compact(dat []byte) string {
	var out []byte
	for _, b := range dat {
		if b != ' ' && b != '\n' {
			out = append(out, b)
		}
	}
	return string(out)
}
