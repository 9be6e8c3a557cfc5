package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
)

type StorageService interface {
	SaveFile(ctx context.Context, file *multipart.FileHeader) (string, error)
	GetFilePath(filename string) string
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
	archiver   Archiver
}

// NewStorageService stores uploads under uploadPath. archiver may be nil.
func NewStorageService(uploadPath string, archiver Archiver) StorageService {
	if archiver == nil {
		archiver = NoopArchiver{}
	}
	return &storageService{
		uploadPath: uploadPath,
		archiver:   archiver,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile writes the upload under its client-supplied name, replacing any
// existing file with that name. Uploads are never removed.
func (s *storageService) SaveFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	filePath := s.GetFilePath(file.Filename)

	if err := copyUpload(file, filePath); err != nil {
		return "", err
	}

	if err := s.archiver.Archive(ctx, file.Filename, filePath); err != nil {
		log.Printf("⚠️  Failed to archive %s: %v", file.Filename, err)
	}

	return filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func copyUpload(file *multipart.FileHeader, filePath string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	return dst.Close()
}
