package model

import "time"

// Document is the metadata record for an uploaded vendor file.
// FilePath is the key under which the content lives in storage.
type Document struct {
	ID           int64     `json:"id"`
	VendorID     int64     `json:"vendor_id"`
	Title        string    `json:"title"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	UploadedByID *int64    `json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// DocumentView adds the uploader's display name.
type DocumentView struct {
	Document
	UploadedBy string `json:"uploaded_by"`
}
