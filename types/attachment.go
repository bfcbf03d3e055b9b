package types

import "time"

// Attachment represents a file attached to a journal entry. The file
// bytes live in object storage under FileKey; this record is the metadata.
type Attachment struct {
	// ID is the unique identifier of the attachment.
	ID int `json:"id" db:"id"`

	// EntryID is the id of the journal entry the file is attached to.
	EntryID int `json:"entryId" db:"entry_id"`

	// FileKey is the server-generated object storage key. It is never
	// derived from a client-supplied path.
	FileKey string `json:"-" db:"file_key"`

	// FileName is the original name of the uploaded file, used for
	// downloads.
	FileName string `json:"fileName" db:"file_name"`

	// FileType is the MIME content type reported at upload time.
	FileType string `json:"fileType" db:"file_type"`

	// CreatedAt is the timestamp when the attachment was uploaded.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the record.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
