package constants

import (
	"os"
	"path/filepath"
)

func getenv(name string, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "chordsheet")
}

func GetPrefsPath() string {
	return getenv("CHORDSHEET_PREFS", filepath.Join(configDir(), "prefs.json"))
}

func GetSongListPath() string {
	return getenv("CHORDSHEET_SONGLIST", filepath.Join(configDir(), "songlist.json"))
}

// GetSongDir is only a fallback, the preferences file usually carries SONGDIR.
func GetSongDir() string {
	if path := os.Getenv("CHORDSHEET_SONG_DIR"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func GetListenAddr() string {
	return getenv("CHORDSHEET_ADDR", ":8080")
}

// catalog lookups are disabled unless an endpoint is configured
func GetCatalogEndpoint() string {
	return os.Getenv("CHORDSHEET_CATALOG_ENDPOINT")
}

func GetCatalogRegion() string {
	return getenv("CHORDSHEET_CATALOG_REGION", "localhost")
}

func GetCatalogTable() string {
	return getenv("CHORDSHEET_CATALOG_TABLE", "chordsheet-catalog")
}

const (
	DefaultFontSize         = 25
	DefaultFontSizePortrait = 25
	DefaultPageSize         = 38
	DefaultPageSizePortrait = 50

	// DynamoDB BatchGetItem limit is 100, we stay well below it
	CatalogBatchSize = 25

	AutosaveDelayMillis = 750
)
