package songlist

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/util"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("song not in list")

// record is one entry as stored on disk: a two element array [path, offset].
type record struct {
	Path   string
	Offset int
}

func (r record) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Path, r.Offset})
}

func (r *record) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("song list entry has %d fields, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.Path); err != nil {
		return errors.Wrap(err, "song list entry path")
	}
	if err := json.Unmarshal(raw[1], &r.Offset); err != nil {
		return errors.Wrap(err, "song list entry offset")
	}
	return nil
}

// List is a set list: songs in order, each with its own transposition, and
// a current position. It is safe for concurrent use.
type List struct {
	mu       sync.Mutex
	path     string
	songDir  string
	entries  []model.SongListEntry
	current  int
	autosave func(f func())
	dirty    bool
	closed   bool
}

func New(path string, songDir string) *List {
	return &List{
		path:     path,
		songDir:  songDir,
		autosave: debounce.New(constants.AutosaveDelayMillis * time.Millisecond),
	}
}

// Load reads the list at path. Song paths are resolved against songDir when
// relative. Songs that cannot be read are skipped with a warning.
func Load(path string, songDir string) (*List, error) {
	l := New(path, songDir)
	if !util.FileExists(path) {
		return l, nil
	}

	records, err := util.ReadJSON[[]record](path)
	if err != nil {
		return l, err
	}
	for _, r := range records {
		if _, err := l.add(r.Path, r.Offset); err != nil {
			slog.Warn("skipping song", "path", r.Path, "err", err)
		}
	}
	slog.Debug("loaded song list", "path", path, "songs", len(l.entries))
	return l, nil
}

func (l *List) resolve(path string) string {
	if filepath.IsAbs(path) || l.songDir == "" {
		return path
	}
	return filepath.Join(l.songDir, path)
}

func (l *List) add(path string, offset int) (model.SongListEntry, error) {
	s, err := file.Load(l.resolve(path))
	if err != nil {
		return model.SongListEntry{}, err
	}
	e := model.SongListEntry{
		ID:     uuid.New().String(),
		Path:   path,
		Offset: util.Mod(offset, model.NumPitchClasses),
		Song:   s,
	}
	l.entries = append(l.entries, e)
	return e, nil
}

// Add appends the song at path untransposed.
func (l *List) Add(path string) (model.SongListEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, err := l.add(path, 0)
	if err != nil {
		return e, err
	}
	l.scheduleSave()
	return e, nil
}

func (l *List) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.find(id)
	if i < 0 {
		return errors.Wrap(ErrNotFound, id)
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	if l.current >= len(l.entries) {
		l.current = 0
	}
	l.scheduleSave()
	return nil
}

func (l *List) find(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *List) Entries() []model.SongListEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := make([]model.SongListEntry, len(l.entries))
	copy(res, l.entries)
	return res
}

func (l *List) Get(id string) (model.SongListEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.find(id)
	if i < 0 {
		return model.SongListEntry{}, errors.Wrap(ErrNotFound, id)
	}
	return l.entries[i], nil
}

// Transpose moves the entry by delta semitones; the stored offset stays in
// 0..11. The list is saved shortly after the last change.
func (l *List) Transpose(id string, delta int) (model.SongListEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.find(id)
	if i < 0 {
		return model.SongListEntry{}, errors.Wrap(ErrNotFound, id)
	}
	e := &l.entries[i]
	e.Offset = util.Mod(e.Offset+util.Mod(delta, model.NumPitchClasses), model.NumPitchClasses)
	l.scheduleSave()
	return *e, nil
}

// Replace stores an edited song for the entry and sets its offset.
func (l *List) Replace(id string, s model.Song, offset int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.find(id)
	if i < 0 {
		return errors.Wrap(ErrNotFound, id)
	}
	l.entries[i].Song = s
	l.entries[i].Offset = util.Mod(offset, model.NumPitchClasses)
	l.scheduleSave()
	return nil
}

// Current returns the selected entry, false for an empty list.
func (l *List) Current() (model.SongListEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return model.SongListEntry{}, false
	}
	return l.entries[l.current], true
}

func (l *List) Select(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.find(id)
	if i < 0 {
		return errors.Wrap(ErrNotFound, id)
	}
	l.current = i
	return nil
}

// Next and Prev move the selection, wrapping at either end.
func (l *List) Next() (model.SongListEntry, bool) {
	return l.step(1)
}

func (l *List) Prev() (model.SongListEntry, bool) {
	return l.step(-1)
}

func (l *List) step(by int) (model.SongListEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return model.SongListEntry{}, false
	}
	l.current = util.Mod(l.current+by, len(l.entries))
	return l.entries[l.current], true
}

// scheduleSave must be called with l.mu held.
func (l *List) scheduleSave() {
	if l.path == "" || l.closed {
		return
	}
	l.dirty = true
	l.autosave(func() {
		l.mu.Lock()
		skip := l.closed || !l.dirty
		l.mu.Unlock()
		if skip {
			return
		}
		if err := l.Save(); err != nil {
			slog.Error("autosave failed", "path", l.path, "err", err)
		}
	})
}

// Close writes pending changes and stops autosaving.
func (l *List) Close() error {
	l.mu.Lock()
	dirty := l.dirty && !l.closed
	l.closed = true
	l.mu.Unlock()
	if !dirty {
		return nil
	}
	return l.Save()
}

// Save writes the list now.
func (l *List) Save() error {
	l.mu.Lock()
	records := make([]record, len(l.entries))
	for i, e := range l.entries {
		records[i] = record{Path: e.Path, Offset: e.Offset}
	}
	l.dirty = false
	l.mu.Unlock()

	if err := util.CreateJSON(l.path, records); err != nil {
		return errors.Wrap(err, "could not save song list")
	}
	slog.Debug("saved song list", "path", l.path, "songs", len(records))
	return nil
}
