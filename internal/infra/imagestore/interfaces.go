package imagestore

import "context"

type ClientInterface interface {
	Upload(ctx context.Context, file File) (string, error)
	UploadBatch(ctx context.Context, files []File) ([]string, error)
	Delete(ctx context.Context, imageURL string) error
	DeleteBatch(ctx context.Context, urls []string)
}

var _ ClientInterface = (*Client)(nil)
