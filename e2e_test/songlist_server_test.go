//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/prefs"
	"github.com/jsphweid/chordsheet/server"
	"github.com/jsphweid/chordsheet/songlist"
	"github.com/stretchr/testify/assert"
)

var (
	songDir  string
	listPath string
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "chordsheet-e2e")
	if err != nil {
		panic(err.Error())
	}
	songDir = dir
	listPath = filepath.Join(dir, "songlist.json")

	songs := []model.Song{
		{Path: filepath.Join(dir, "grace.xml"), Title: "Amazing Grace", Key: "G", Lyrics: "[V1]\n.G        G7     C    G\n Amazing grace how sweet the sound\n[===]\n.Em   D\n That saved"},
		{Path: filepath.Join(dir, "joy.xml"), Title: "Joy", Key: "Bb", Lyrics: ".Bb  F\n Joy to the world"},
	}
	for i := range songs {
		if err := file.Save(&songs[i]); err != nil {
			panic(err.Error())
		}
	}
	if err := os.WriteFile(listPath, []byte(`[["grace.xml", 0], ["joy.xml", 14]]`), 0666); err != nil {
		panic(err.Error())
	}

	exitVal := m.Run()

	os.RemoveAll(dir)
	os.Exit(exitVal)
}

func open(t *testing.T) (http.Handler, *songlist.List) {
	list, err := songlist.Load(listPath, songDir)
	if err != nil {
		t.Fatal(err)
	}
	return server.New(prefs.Default(), list).Router(), list
}

func request(h http.Handler, method, target string, body any) *http.Response {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err.Error())
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Result()
}

func TestTransposePersistsE2E(t *testing.T) {
	h, list := open(t)

	resp := request(h, http.MethodGet, "/songs", nil)
	var songs []model.SongSummary
	respBody, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(respBody, &songs); err != nil {
		panic(err.Error())
	}

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	assert.Len(songs, 2)
	assert.Equal("G", songs[0].Key)
	// 14 is stored as 2
	assert.Equal(2, songs[1].Offset)
	assert.Equal("C", songs[1].Key)

	resp = request(h, http.MethodPost, "/songs/"+songs[0].ID+"/transpose", model.TransposeRequestBody{Delta: 5})
	assert.Equal(200, resp.StatusCode)
	assert.NoError(list.Close())

	_, reopened := open(t)
	defer reopened.Close()
	e := reopened.Entries()[0]
	assert.Equal(5, e.Offset)
	assert.Equal("Amazing Grace", e.Song.Title)
}

func TestSongPageE2E(t *testing.T) {
	h, list := open(t)
	defer list.Close()
	id := list.Entries()[1].ID

	resp := request(h, http.MethodGet, "/songs/"+id, nil)
	body, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	page := string(body)
	assert.True(strings.HasPrefix(page, "<html>"))
	assert.Contains(page, "<em data-chord='C'></em>")
	assert.Contains(page, "<em data-chord='G'></em>")
}

func TestEditRoundTripE2E(t *testing.T) {
	h, _ := open(t)
	s, err := file.Load(filepath.Join(songDir, "grace.xml"))
	if err != nil {
		t.Fatal(err)
	}

	up := request(h, http.MethodPost, "/render", model.RenderRequestBody{Text: s.Lyrics, Key: s.Key, Offset: 4, Mode: "edit"})
	var res model.RenderResponse
	respBody, _ := io.ReadAll(up.Body)
	if err := json.Unmarshal(respBody, &res); err != nil {
		panic(err.Error())
	}
	assert := assert.New(t)
	assert.Equal("B", res.Key)
	assert.Contains(res.Text, ".B        B7     E    B")

	down := request(h, http.MethodPost, "/render", model.RenderRequestBody{Text: res.Text, Key: res.Key, Offset: -4, Mode: "edit"})
	respBody, _ = io.ReadAll(down.Body)
	if err := json.Unmarshal(respBody, &res); err != nil {
		panic(err.Error())
	}
	assert.Equal(s.Lyrics, res.Text)
	assert.Equal("G", res.Key)
}
