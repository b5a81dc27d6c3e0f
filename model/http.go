package model

type RenderRequestBody struct {
	Text        string `json:"text"`
	Key         string `json:"key"`
	Offset      int    `json:"offset"`
	PageSize    int    `json:"page_size"`
	Orientation string `json:"orientation"`
	Mode        string `json:"mode"`
	Spelling    string `json:"spelling"`
	FontSize    int    `json:"font_size"`
}

type RenderResponse struct {
	Text   string   `json:"text"`
	Key    string   `json:"key"`
	Issues []string `json:"issues"`
}

type KeyResponse struct {
	Label string `json:"label"`
}

type SongSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Key    string `json:"key"`
	Offset int    `json:"offset"`
}

type TransposeRequestBody struct {
	Delta int `json:"delta"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
