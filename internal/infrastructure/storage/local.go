// Package storage keeps book cover images on local disk under the web root,
// served back by relative path.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	coversDirectory = "uploads/covers"
	noCoverImage    = "images/no-cover.svg"
)

var (
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidExtension    = errors.New("file extension is not allowed")
	ErrInvalidMimeType     = errors.New("file mime type is not allowed")
)

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// CoverStorage stores and serves book cover files.
type CoverStorage struct {
	webRoot     string
	maxFileSize int64
}

func NewCoverStorage(webRoot string, maxFileSize int64) *CoverStorage {
	return &CoverStorage{
		webRoot:     webRoot,
		maxFileSize: maxFileSize,
	}
}

// SaveCover validates and stores an uploaded cover, returning its relative
// path. The old file, when given, is removed after a successful save.
func (s *CoverStorage) SaveCover(file *multipart.FileHeader, oldPath string) (string, error) {
	ext, err := s.validate(file)
	if err != nil {
		return "", err
	}

	uploadDir := filepath.Join(s.webRoot, coversDirectory)
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName := fmt.Sprintf("cover_%s.%s", uuid.NewString(), ext)
	relPath := coversDirectory + "/" + fileName
	fullPath := filepath.Join(uploadDir, fileName)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create cover file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write cover file: %w", err)
	}

	if oldPath != "" {
		s.DeleteCover(oldPath)
	}

	log.Info().
		Str("file", relPath).
		Int64("size", file.Size).
		Str("original_name", file.Filename).
		Msg("cover file uploaded")

	return relPath, nil
}

// DeleteCover removes a cover file. A missing file counts as success.
func (s *CoverStorage) DeleteCover(relPath string) bool {
	fullPath := filepath.Join(s.webRoot, filepath.FromSlash(relPath))

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return true
	}

	if err := os.Remove(fullPath); err != nil {
		log.Warn().Err(err).Str("file", relPath).Msg("failed to delete cover file")
		return false
	}

	return true
}

// CoverExists reports whether a stored cover file is present on disk.
func (s *CoverStorage) CoverExists(relPath string) bool {
	if relPath == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(s.webRoot, filepath.FromSlash(relPath)))
	return err == nil && info.Mode().IsRegular()
}

// CoverURL returns the web path for a cover, or the placeholder when the
// file is absent.
func (s *CoverStorage) CoverURL(relPath string) string {
	if relPath != "" && s.CoverExists(relPath) {
		return "/" + relPath
	}
	return "/" + noCoverImage
}

func (s *CoverStorage) validate(file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxFileSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, file.Size, s.maxFileSize)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}

	mimeType := file.Header.Get("Content-Type")
	if !allowedMimeTypes[mimeType] {
		return "", fmt.Errorf("%w: %q", ErrInvalidMimeType, mimeType)
	}

	return ext, nil
}
