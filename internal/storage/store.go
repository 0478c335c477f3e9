package storage

import (
	"BotDisk/config"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
)

// Handle identifies an object previously stored in the blob backend.
// ObjectID fetches the bytes back, MessageRef is the backend-internal
// reference needed to delete them.
type Handle struct {
	ObjectID   string
	MessageRef int64
}

// Store abstracts the blob backend.
type Store interface {
	Put(ctx context.Context, reader io.Reader, size int64, fileName string, class Classification) (Handle, error)
	Resolve(ctx context.Context, objectID string) ([]byte, error)
	Remove(ctx context.Context, h Handle) error
}

// ErrorKind classifies blob-backend failures at the point they occur, so
// callers never have to inspect error text.
type ErrorKind int

const (
	// KindUpstream means the backend rejected the call (bad token, bad
	// argument, payload refused).
	KindUpstream ErrorKind = iota + 1
	// KindUnreachable means the backend could not be reached at all.
	KindUnreachable
	// KindMissingID means the upload succeeded but no object id was present
	// in the response.
	KindMissingID
	// KindMissingRef means the upload response carried no message reference.
	KindMissingRef
	// KindNotFound means the backend has no transient path for the object.
	KindNotFound
	// KindFetchFailed means the byte-fetch step after path resolution failed.
	KindFetchFailed
	// KindAlreadyRemoved means a delete found the object already gone
	// upstream. Non-fatal for the delete flow.
	KindAlreadyRemoved
)

// BackendError wraps a blob-backend failure with its kind.
type BackendError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("blob backend %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func backendErr(kind ErrorKind, op string, err error) *BackendError {
	return &BackendError{Kind: kind, Op: op, Err: err}
}

func backendErrf(kind ErrorKind, op, format string, args ...interface{}) *BackendError {
	return &BackendError{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the error kind, or zero for non-backend errors.
func KindOf(err error) ErrorKind {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}

// Default is the blob backend instance used by the relay flows.
var Default Store

// InitStore builds the configured blob backend and sets Default.
func InitStore() {
	switch config.AppConfig.StorageDriver {
	case "minio":
		InitMinioStore()
	case "chatbot", "":
		Default = NewBotStore(
			config.AppConfig.BotAPIBase,
			config.AppConfig.BotFileBase,
			config.AppConfig.BotToken,
			config.AppConfig.BotChatID,
			config.AppConfig.BotHTTPTimeout,
		)
		log.Println("init chatbot store success")
	default:
		log.Fatalf("unknown storage driver %q", config.AppConfig.StorageDriver)
	}
}
