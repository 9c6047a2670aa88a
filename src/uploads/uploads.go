// Package uploads stages multipart files on disk under randomized names.
// Credential documents are deleted after processing; verification documents
// are retained and served statically.
package uploads

import (
	"fmt"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"credchain/src/apperrors"
	"credchain/src/logger"

	"github.com/gin-gonic/gin"
)

// MaxFileSize caps every upload at 10MB.
const MaxFileSize = 10 << 20

var allowedTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

// Save validates and writes one multipart file into dir, returning the staged
// path. The stored name is fieldname-timestamp-random.ext so uploads never
// collide or leak the original filename.
func Save(c *gin.Context, file *multipart.FileHeader, field, dir string) (string, error) {
	if file.Size > MaxFileSize {
		return "", apperrors.InvalidArg("file exceeds the 10MB limit")
	}
	if !allowedTypes[file.Header.Get("Content-Type")] {
		return "", apperrors.InvalidArg("invalid file type, only PDF, PNG and JPG files are allowed")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	name := fmt.Sprintf("%s-%d-%d%s", field, time.Now().UnixMilli(), rand.Int63n(1e9), filepath.Ext(file.Filename))
	path := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("saving uploaded file: %w", err)
	}
	return path, nil
}

// Remove deletes a staged file, logging rather than failing when it is
// already gone.
func Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Default().Errorf(err, "Failed to remove staged upload %s", path)
	}
}
