package domain

import "time"

// StoredFile is an uploaded file as reported by the record store.
type StoredFile struct {
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadDate time.Time `json:"uploadDate"`
	Path       string    `json:"path"`
}

// UploadResult is the store's answer to a successful upload.
type UploadResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Filename     string `json:"filename,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
	Size         int64  `json:"size,omitempty"`
}

// StatusResponse is the generic {success, message} envelope.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
