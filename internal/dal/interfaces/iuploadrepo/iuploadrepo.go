package iuploadrepo

import (
	"context"

	"github.com/corray333/backend-labs/admin/internal/service/models/upload"
)

// IUploadRepository is an interface for the upload metadata storage.
type IUploadRepository interface {
	Insert(ctx context.Context, img upload.Image) (upload.Image, error)
}
