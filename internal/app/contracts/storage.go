package contracts

import (
	"context"
	"io"
	"mime/multipart"
	"time"
)

type Storage interface {
	UploadFile(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader, bucketName, objectName string) (string, error)
	PresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error)
}
