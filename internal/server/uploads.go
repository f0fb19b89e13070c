package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"earshot/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 << 20 // 5 MiB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// saveUploadedImage stores the multipart file from the given form field under
// the configured upload directory and returns its served path. A missing
// field returns ("", nil) so callers can treat the image as optional.
func (s *Server) saveUploadedImage(c *fiber.Ctx, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "there is no uploaded file") {
			return "", nil
		}
		return "", models.NewValidationError("Invalid multipart form data")
	}

	if fileHeader.Size > maxUploadBytes {
		return "", models.NewValidationError("Image must be smaller than 5MB")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		return "", models.NewValidationError("Unsupported image format")
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(s.config.UploadDir, name)
	if err := c.SaveFile(fileHeader, dst); err != nil {
		return "", models.NewInternalError(err)
	}

	return "/uploads/" + name, nil
}
