package uploadsvc

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/corray333/backend-labs/admin/internal/dal/interfaces/ifilestore"
	"github.com/corray333/backend-labs/admin/internal/dal/interfaces/iuploadrepo"
	"github.com/corray333/backend-labs/admin/internal/service/models/upload"
)

// UploadService validates and stores image attachments. Every accepted image
// is re-encoded, so nothing a client sent reaches the permanent directory
// byte for byte.
type UploadService struct {
	files       ifilestore.IFileStore
	uploadRepo  iuploadrepo.IUploadRepository
	maxWidth    int
	maxHeight   int
	jpegQuality int
}

// option is a function that configures the UploadService.
type option func(*UploadService)

// MustNewUploadService creates a new UploadService.
func MustNewUploadService(opts ...option) *UploadService {
	s := &UploadService{
		maxWidth:    1920,
		maxHeight:   1080,
		jpegQuality: 85,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithFileStore sets the binary storage for the UploadService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithFileStore(files ifilestore.IFileStore) option {
	return func(s *UploadService) {
		s.files = files
	}
}

// WithUploadRepository sets the metadata storage for the UploadService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUploadRepository(repo iuploadrepo.IUploadRepository) option {
	return func(s *UploadService) {
		s.uploadRepo = repo
	}
}

// WithMaxDimensions caps the stored image size. Larger images are scaled
// down preserving the aspect ratio, smaller ones stay as they are.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMaxDimensions(width, height int) option {
	return func(s *UploadService) {
		s.maxWidth = width
		s.maxHeight = height
	}
}

// WithJPEGQuality sets the re-encoding quality.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithJPEGQuality(quality int) option {
	return func(s *UploadService) {
		s.jpegQuality = quality
	}
}

// SaveImage stages the upload, decodes and re-encodes it as a bounded JPEG,
// promotes the result into permanent storage and records its metadata.
func (s *UploadService) SaveImage(
	ctx context.Context,
	entity upload.Entity,
	entityID string,
	originalName string,
	r io.Reader,
) (upload.Image, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "UploadService.SaveImage")
	defer span.End()

	staged, err := s.files.SaveTemp(originalName, r)
	if err != nil {
		return upload.Image{}, err
	}
	defer s.files.Remove(staged)

	img, err := imaging.Open(staged, imaging.AutoOrientation(true))
	if err != nil {
		return upload.Image{}, fmt.Errorf("%w: %v", upload.ErrInvalidImage, err)
	}

	img = imaging.Fit(img, s.maxWidth, s.maxHeight, imaging.Lanczos)

	processed := staged + ".out.jpg"
	if err := imaging.Save(img, processed, imaging.JPEGQuality(s.jpegQuality)); err != nil {
		return upload.Image{}, fmt.Errorf("failed to encode image: %w", err)
	}

	fileName := uuid.New().String() + ".jpg"
	finalPath, err := s.files.Promote(processed, fileName)
	if err != nil {
		s.files.Remove(processed)

		return upload.Image{}, err
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		return upload.Image{}, fmt.Errorf("failed to stat stored image: %w", err)
	}

	stored, err := s.uploadRepo.Insert(ctx, upload.Image{
		Entity:       entity,
		EntityID:     entityID,
		FileName:     fileName,
		OriginalName: originalName,
		SizeBytes:    info.Size(),
		Width:        img.Bounds().Dx(),
		Height:       img.Bounds().Dy(),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		s.files.Remove(finalPath)

		return upload.Image{}, err
	}

	return stored, nil
}
