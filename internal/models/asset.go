package models

import "time"

// Asset is an uploaded binary (audio or image). Rows are created before the
// bytes are written to the object store; CompleteUpload verifies the bytes.
type Asset struct {
	ID              string    `db:"id"`
	Type            string    `db:"type"`
	StorageProvider string    `db:"storage_provider"`
	StorageBucket   string    `db:"storage_bucket"`
	StorageKey      string    `db:"storage_key"`
	PublicURL       string    `db:"public_url"`
	ContentType     string    `db:"content_type"`
	ByteSize        int64     `db:"byte_size"`
	Checksum        *string   `db:"checksum"`
	CreatedAt       time.Time `db:"created_at"`
}
