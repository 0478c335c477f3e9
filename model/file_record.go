package model

// FileRecord maps a public URL to the blob-backend handle that stores its
// bytes. The URL is derived from the upload timestamp and never reused, so
// rows are immutable: created on upload, removed on delete.
type FileRecord struct {
	URL string `gorm:"column:url;primaryKey;size:512" json:"url"`

	// FileID is the backend object identifier, MessageID the backend-internal
	// reference needed to delete the object.
	FileID    string `gorm:"column:file_id;size:256;not null" json:"file_id"`
	MessageID int64  `gorm:"column:message_id;not null" json:"message_id"`

	// CreatedAt is an ISO-like string in a fixed UTC offset; its lexicographic
	// order matches chronological order.
	CreatedAt string `gorm:"column:created_at;size:32;index" json:"created_at"`

	FileName string `gorm:"column:file_name;size:255" json:"file_name,omitempty"`
	FileSize int64  `gorm:"column:file_size" json:"file_size,omitempty"`
	MimeType string `gorm:"column:mime_type;size:128" json:"mime_type,omitempty"`
}

// TableName returns the database table name.
func (FileRecord) TableName() string {
	return "files"
}
