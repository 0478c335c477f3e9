package dto

import "BotDisk/model"

// UploadResponse is the upload endpoint's JSON body. Status is 1 on
// success and 0 on failure.
type UploadResponse struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SearchResponse struct {
	Files []model.FileRecord `json:"files"`
}
