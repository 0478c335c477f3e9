package service

import (
	"BotDisk/config"
	"BotDisk/internal/storage"
	"BotDisk/model"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

const createdAtLayout = "2006-01-02T15:04:05"

// FormatCreatedAt renders a timestamp in the configured fixed UTC offset.
// The layout sorts lexicographically in chronological order.
func FormatCreatedAt(t time.Time) string {
	offset := config.AppConfig.TimeOffsetHours
	zone := time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*3600)
	return t.In(zone).Format(createdAtLayout)
}

// BuildFileURL derives the canonical public URL for an upload.
func BuildFileURL(origin string, ts int64, ext string) string {
	if ext == "" {
		return fmt.Sprintf("%s/%d", origin, ts)
	}
	return fmt.Sprintf("%s/%d.%s", origin, ts, ext)
}

// UploadFile runs the upload flow: classify, store in the blob backend,
// then insert the index record. A backend failure aborts before the index
// is touched. If the insert itself fails the already-stored blob is left
// behind; the flow does not compensate.
func UploadFile(ctx context.Context, origin, fileName string, reader io.Reader, size int64) (*model.FileRecord, error) {
	if storage.Default == nil {
		return nil, fmt.Errorf("storage not initialized")
	}
	ext := storage.ExtOf(fileName)
	class := storage.Classify(ext)

	handle, err := storage.Default.Put(ctx, reader, size, fileName, class)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &model.FileRecord{
		URL:       BuildFileURL(origin, now.UnixMilli(), ext),
		FileID:    handle.ObjectID,
		MessageID: handle.MessageRef,
		CreatedAt: FormatCreatedAt(now),
		FileName:  fileName,
		FileSize:  size,
		MimeType:  class.MimeType,
	}
	if err := CreateFileRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

// UploadErrorStatus maps an upload-flow error to its HTTP status.
func UploadErrorStatus(err error) int {
	switch storage.KindOf(err) {
	case storage.KindUpstream:
		return http.StatusBadGateway
	case storage.KindUnreachable:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DeleteOutcome reports what happened on the blob-backend side of a delete.
type DeleteOutcome int

const (
	// BackendDeleted means the backend removed the object.
	BackendDeleted DeleteOutcome = iota
	// BackendDeleteFailed means the backend call failed; the index row is
	// gone anyway.
	BackendDeleteFailed
	// BackendAlreadyGone means the object had already been removed upstream.
	BackendAlreadyGone
)

// DeleteFile runs the delete flow. Blob-backend deletion is best-effort;
// the index deletion is authoritative and happens regardless of the backend
// outcome.
func DeleteFile(ctx context.Context, url string) (DeleteOutcome, error) {
	record, err := GetFileRecordByURL(url)
	if err != nil {
		return BackendDeleteFailed, err
	}
	if storage.Default == nil {
		return BackendDeleteFailed, fmt.Errorf("storage not initialized")
	}

	outcome := BackendDeleted
	removeErr := storage.Default.Remove(ctx, storage.Handle{
		ObjectID:   record.FileID,
		MessageRef: record.MessageID,
	})
	if removeErr != nil {
		if storage.KindOf(removeErr) == storage.KindAlreadyRemoved {
			outcome = BackendAlreadyGone
		} else {
			outcome = BackendDeleteFailed
			log.Printf("backend delete failed for %s: %v", url, removeErr)
		}
	}

	if err := DeleteFileRecordByURL(url); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// ResolveFileBytes fetches a record's bytes from the blob backend and
// returns them with the response content type. A missing stored type is
// re-derived from the URL extension.
func ResolveFileBytes(ctx context.Context, record *model.FileRecord) ([]byte, string, error) {
	if storage.Default == nil {
		return nil, "", fmt.Errorf("storage not initialized")
	}
	data, err := storage.Default.Resolve(ctx, record.FileID)
	if err != nil {
		return nil, "", err
	}
	mimeType := record.MimeType
	if mimeType == "" {
		mimeType = storage.Classify(storage.ExtOf(record.URL)).MimeType
	}
	return data, mimeType, nil
}

// IsRecordNotFound reports whether err means the URL has no record.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
