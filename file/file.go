package file

import (
	"bytes"
	"encoding/xml"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/chordsheet/model"
	"github.com/pkg/errors"
)

const (
	songExt       = ".xml"
	defaultKey    = "C"
	defaultMarker = "Default"
)

// element is any child of <song> we do not interpret. It is written back as
// it was read.
type element struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

type document struct {
	XMLName xml.Name  `xml:"song"`
	Title   string    `xml:"title"`
	Lyrics  string    `xml:"lyrics"`
	Key     string    `xml:"key"`
	User1   string    `xml:"user1"`
	Extra   []element `xml:",any"`
}

func empty(name string, attrs ...xml.Attr) element {
	return element{XMLName: xml.Name{Local: name}, Attrs: attrs}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// newDocument has every element a song editor expects, empty.
func newDocument() document {
	return document{Extra: []element{
		empty("author"),
		empty("copyright"),
		empty("hymn_number"),
		empty("presentation"),
		empty("ccli"),
		empty("capo", attr("print", "false")),
		empty("aka"),
		empty("key_line"),
		empty("user2"),
		empty("user3"),
		empty("theme"),
		empty("linked_songs"),
		empty("tempo"),
		empty("time_sig"),
		empty("backgrounds",
			attr("resize", "body"),
			attr("keep_aspect", "false"),
			attr("link", "false"),
			attr("background_as_text", "false")),
	}}
}

func readDocument(path string) (document, error) {
	var doc document
	dat, err := os.ReadFile(path)
	if err != nil {
		return doc, errors.Wrapf(err, "could not read song %v", path)
	}
	if err := xml.Unmarshal(dat, &doc); err != nil {
		return doc, errors.Wrapf(err, "could not parse song %v", path)
	}
	return doc, nil
}

// Load reads a song file. A song without a key is in C, a song without a
// title is named after its file.
func Load(path string) (model.Song, error) {
	doc, err := readDocument(path)
	if err != nil {
		return model.Song{}, err
	}

	s := model.Song{
		Path:   path,
		Title:  strings.TrimSpace(doc.Title),
		Lyrics: doc.Lyrics,
		Key:    strings.TrimSpace(doc.Key),
	}
	if s.Title == "" {
		s.Title = filepath.Base(path)
	}
	if s.Key == "" {
		s.Key = defaultKey
	}
	s.FontSize, s.FontSizePortrait, s.PageSize, s.PageSizePortrait = parseSizes(doc.User1)
	return s, nil
}

// Save writes s to s.Path. An existing file keeps every element this package
// does not manage. A new file gets the .xml extension when its name has none,
// and s.Path is updated to match.
func Save(s *model.Song) error {
	path := s.Path
	doc := newDocument()
	if _, err := os.Stat(path); err == nil {
		if doc, err = readDocument(path); err != nil {
			return err
		}
	} else if filepath.Ext(path) == "" {
		path += songExt
	}

	doc.Title = s.Title
	doc.Lyrics = s.Lyrics
	doc.Key = s.Key
	doc.User1 = formatSizes(s.FontSize, s.FontSizePortrait, s.PageSize, s.PageSizePortrait)

	buf := new(bytes.Buffer)
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrapf(err, "could not encode song %v", path)
	}
	buf.WriteString("\n")

	if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
		return errors.Wrapf(err, "write failed for song %v", path)
	}
	slog.Info("saved song", "path", path)
	s.Path = path
	return nil
}

// parseSizes reads "font|fontPortrait|page|pagePortrait". Anything that is
// not a positive number, "Default" included, is zero.
func parseSizes(user1 string) (int, int, int, int) {
	var res [4]int
	if !strings.Contains(user1, "|") {
		return 0, 0, 0, 0
	}
	for i, v := range strings.SplitN(user1, "|", 4) {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil && n > 0 {
			res[i] = n
		}
	}
	return res[0], res[1], res[2], res[3]
}

func formatSizes(sizes ...int) string {
	parts := make([]string, len(sizes))
	for i, v := range sizes {
		if v > 0 {
			parts[i] = strconv.Itoa(v)
		} else {
			parts[i] = defaultMarker
		}
	}
	return strings.Join(parts, "|")
}

// ListSongs returns the song files under dir relative to it, sorted.
func ListSongs(dir string) ([]string, error) {
	var res []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), songExt) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		res = append(res, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not scan %v", dir)
	}
	sort.Strings(res)
	return res, nil
}
