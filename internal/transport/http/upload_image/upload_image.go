package uploadimage

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/viper"

	"github.com/corray333/backend-labs/admin/internal/service/models/upload"
	"github.com/corray333/backend-labs/admin/internal/transport/http/respond"
)

type service interface {
	SaveImage(ctx context.Context, entity upload.Entity, entityID string, originalName string, r io.Reader) (upload.Image, error)
}

// UploadImage handles the image attachment request. The file arrives as the
// multipart field "image".
func UploadImage(w http.ResponseWriter, r *http.Request, service service) {
	entity, err := upload.ParseEntity(chi.URLParam(r, "entity"))
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error parsing upload entity", "error", err)

		return
	}

	maxSizeMB := viper.GetInt64("uploads.max_size_mb")
	if maxSizeMB == 0 {
		maxSizeMB = 10
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxSizeMB<<20)

	file, header, err := r.FormFile("image")
	if err != nil {
		respond.BadRequest(w, "multipart field \"image\" is required")
		slog.Error("Error reading uploaded file", "error", err)

		return
	}
	defer file.Close()

	stored, err := service.SaveImage(r.Context(), entity, chi.URLParam(r, "entityID"), header.Filename, file)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error storing uploaded image", "error", err)

		return
	}

	respond.JSON(w, http.StatusCreated, stored)
}
