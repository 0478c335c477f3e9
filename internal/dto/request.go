package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type DeleteFileRequest struct {
	URL string `json:"url" binding:"required"`
}

// SearchRequest carries a free-text query. An empty query is valid and
// matches every record.
type SearchRequest struct {
	Query string `json:"query"`
}

type FetchRequest struct {
	URL      string `json:"url" binding:"required"`
	FileName string `json:"file_name"`
}

type ShareMailRequest struct {
	URL string `json:"url" binding:"required"`
	To  string `json:"to" binding:"required"`
}
