package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/midi"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/pdf"
	"github.com/jsphweid/chordsheet/prefs"
	"github.com/jsphweid/chordsheet/song"
	"github.com/jsphweid/chordsheet/songlist"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

const maxBodyBytes = 1 << 20

// Server exposes rendering and the current song list over HTTP.
type Server struct {
	prefs prefs.Prefs
	list  *songlist.List
}

func New(p prefs.Prefs, list *songlist.List) *Server {
	return &Server{prefs: p, list: list}
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(logRequests)
	router.HandleFunc("/render", s.HandleRender).Methods("POST")
	router.HandleFunc("/key", s.HandleKey).Methods("GET")
	router.HandleFunc("/songs", s.HandleSongs).Methods("GET")
	router.HandleFunc("/songs/{id}", s.HandleSong).Methods("GET")
	router.HandleFunc("/songs/{id}/transpose", s.HandleTranspose).Methods("POST")
	router.HandleFunc("/songs/{id}/midi", s.HandleMidi).Methods("GET")
	router.HandleFunc("/songs/{id}/pdf", s.HandlePdf).Methods("GET")
	return cors.Default().Handler(router)
}

// ListenAndServe serves h on addr until ctx is done, then shuts down.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "could not shut down")
	}
	slog.Info("stopped")
	return nil
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("could not write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func readJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(err, "could not read request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrap(err, "could not unmarshal request body")
	}
	return nil
}

func issueStrings(issues []error) []string {
	res := make([]string, 0, len(issues))
	for _, err := range issues {
		res = append(res, err.Error())
	}
	return res
}

// spelling picks the spelling for a request: "sharps", "flats" or empty for
// the preferences.
func (s *Server) spelling(name string) (model.SpellingPreference, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return s.prefs.Spelling(), nil
	case "sharp", "sharps":
		return model.AllSharps(), nil
	case "flat", "flats":
		return model.AllFlats(), nil
	}
	return model.SpellingPreference{}, errors.Errorf("unknown spelling %q, want sharps or flats", name)
}

func (s *Server) HandleRender(w http.ResponseWriter, r *http.Request) {
	var input model.RenderRequestBody
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	orientation, err := model.ParseOrientation(input.Orientation)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	spelling, err := s.spelling(input.Spelling)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx := song.Context{
		Key:         input.Key,
		Offset:      input.Offset,
		Spelling:    spelling,
		Orientation: orientation,
		PageSize:    s.prefs.PageSizeFor(orientation, input.PageSize),
	}
	// a negative page size turns threshold breaks off
	if input.PageSize < 0 {
		ctx.PageSize = 0
	}

	var res song.Rendered
	switch input.Mode {
	case "", "display":
		res, err = song.RenderForDisplay(input.Text, ctx)
	case "document":
		res, err = song.RenderForDisplay(input.Text, ctx)
		res.Text = song.Document(res.Text, s.prefs.FontSizeFor(orientation, input.FontSize))
	case "edit":
		res, err = song.RenderForEdit(input.Text, ctx)
	default:
		err = errors.Errorf("unknown mode %q, want display, document or edit", input.Mode)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.RenderResponse{
		Text:   res.Text,
		Key:    res.KeyLabel,
		Issues: issueStrings(res.Issues),
	})
}

func (s *Server) HandleKey(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset := 0
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.Errorf("offset %q is not a number", v))
			return
		}
		offset = n
	}
	spelling, err := s.spelling(q.Get("spelling"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, model.KeyResponse{Label: chord.CurrentKeyLabel(q.Get("key"), offset, spelling)})
}

func (s *Server) summary(e model.SongListEntry) model.SongSummary {
	return model.SongSummary{
		ID:     e.ID,
		Title:  e.Song.Title,
		Key:    chord.CurrentKeyLabel(e.Song.Key, e.Offset, s.prefs.Spelling()),
		Offset: e.Offset,
	}
}

func (s *Server) HandleSongs(w http.ResponseWriter, r *http.Request) {
	res := make([]model.SongSummary, 0)
	for _, e := range s.list.Entries() {
		res = append(res, s.summary(e))
	}
	writeJSON(w, http.StatusOK, res)
}

// entry resolves {id}; it writes the error response itself.
func (s *Server) entry(w http.ResponseWriter, r *http.Request) (model.SongListEntry, bool) {
	e, err := s.list.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return e, false
	}
	return e, true
}

func (s *Server) songContext(e model.SongListEntry, r *http.Request) (song.Context, error) {
	orientation, err := model.ParseOrientation(r.URL.Query().Get("orientation"))
	if err != nil {
		return song.Context{}, err
	}
	return song.Context{
		Key:         e.Song.Key,
		Offset:      e.Offset,
		Spelling:    s.prefs.Spelling(),
		Orientation: orientation,
		PageSize:    s.prefs.PageSizeForSong(orientation, e.Song),
	}, nil
}

func (s *Server) HandleSong(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	ctx, err := s.songContext(e, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := song.RenderForDisplay(e.Song.Lyrics, ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	for _, issue := range res.Issues {
		slog.Debug("render issue", "song", e.Path, "issue", issue)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, song.Document(res.Text, s.prefs.FontSizeForSong(ctx.Orientation, e.Song)))
}

func (s *Server) HandleTranspose(w http.ResponseWriter, r *http.Request) {
	var input model.TransposeRequestBody
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e, err := s.list.Transpose(mux.Vars(r)["id"], input.Delta)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, s.summary(e))
}

func (s *Server) HandleMidi(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	chords := midi.ChordProgression(e.Song.Lyrics, song.Context{Key: e.Song.Key, Offset: e.Offset})
	buf := new(bytes.Buffer)
	if err := midi.WriteProgression(buf, chords, midi.DefaultOptions()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(buf.Bytes())
}

func (s *Server) HandlePdf(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r)
	if !ok {
		return
	}
	ctx, err := s.songContext(e, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	layout, _ := song.BuildLayout(e.Song.Lyrics, ctx)
	buf := new(bytes.Buffer)
	err = pdf.Write(buf, layout, pdf.Options{
		Title:       e.Song.Title,
		Key:         chord.CurrentKeyLabel(e.Song.Key, e.Offset, ctx.Spelling),
		Orientation: ctx.Orientation,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(buf.Bytes())
}
