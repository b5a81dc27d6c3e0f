package model

type Song struct {
	Path   string
	Title  string
	Lyrics string
	Key    string

	// NOTE: zero means "use the preference default"
	FontSize         int
	FontSizePortrait int
	PageSize         int
	PageSizePortrait int
}

type SongListEntry struct {
	ID     string
	Path   string
	Offset int
	Song   Song
}

type SongMetadata struct {
	Artist    string
	Title     string
	Copyright string
	CCLI      string
}
