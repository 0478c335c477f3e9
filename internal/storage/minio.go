package storage

import (
	"BotDisk/config"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore is the alternate blob backend for deployments that keep the
// bytes in an S3-compatible bucket instead of a chat. The object key doubles
// as the object id; no message reference exists.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore builds a Store from a MinIO client.
func NewMinioStore(client *minio.Client, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket}
}

// Put uploads an object under a fresh random key.
func (s *MinioStore) Put(ctx context.Context, reader io.Reader, size int64, fileName string, class Classification) (Handle, error) {
	objectName := uuid.NewString()
	if ext := ExtOf(fileName); ext != "" {
		objectName = objectName + "." + ext
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: class.MimeType,
	})
	if err != nil {
		return Handle{}, backendErr(KindUpstream, "put", err)
	}
	return Handle{ObjectID: objectName}, nil
}

// Resolve reads an object's bytes back.
func (s *MinioStore) Resolve(ctx context.Context, objectID string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectID, minio.GetObjectOptions{})
	if err != nil {
		return nil, backendErr(KindNotFound, "get", err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		var respErr minio.ErrorResponse
		if errors.As(err, &respErr) && respErr.Code == "NoSuchKey" {
			return nil, backendErr(KindNotFound, "get", err)
		}
		return nil, backendErr(KindFetchFailed, "get", err)
	}
	return data, nil
}

// Remove deletes an object. Removing a missing key succeeds upstream, so no
// already-removed case exists for this driver.
func (s *MinioStore) Remove(ctx context.Context, h Handle) error {
	if h.ObjectID == "" {
		return backendErrf(KindUpstream, "remove", "empty object id")
	}
	if err := s.client.RemoveObject(ctx, s.bucket, h.ObjectID, minio.RemoveObjectOptions{}); err != nil {
		return backendErr(KindUpstream, "remove", err)
	}
	return nil
}

// InitMinioStore initializes the MinIO client and bucket and sets Default.
func InitMinioStore() {
	client, err := minio.New(fmt.Sprintf("%s:%s", config.AppConfig.MinioHost, config.AppConfig.MinioPort), &minio.Options{
		Creds:  credentials.NewStaticV4(config.AppConfig.MinioUsername, config.AppConfig.MinioPassword, ""),
		Secure: false,
	})
	if err != nil {
		log.Fatalln("minio error:", err)
	}
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, config.AppConfig.BucketName)
	if err != nil {
		log.Fatalln("check bucket fail:", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.AppConfig.BucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatalln("create bucket fail:", err)
		}
	}
	Default = NewMinioStore(client, config.AppConfig.BucketName)
	log.Println("init minio store success")
}
