package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StoredFile describes a document written to the upload directory.
type StoredFile struct {
	Filename string
	Path     string
	FileType string
}

type StorageService interface {
	SaveFile(file *multipart.FileHeader) (*StoredFile, error)
	SaveFromPath(srcPath string) (*StoredFile, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile implements StorageService for multipart uploads.
func (s *storageService) SaveFile(file *multipart.FileHeader) (*StoredFile, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return s.save(file.Filename, src)
}

// SaveFromPath implements StorageService for files already on disk.
func (s *storageService) SaveFromPath(srcPath string) (*StoredFile, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	return s.save(filepath.Base(srcPath), src)
}

func (s *storageService) save(originalName string, src io.Reader) (*StoredFile, error) {
	fileType := FileTypeOf(originalName)
	if !IsSupportedFileType(fileType) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, fileType)
	}

	uniqueFilename := fmt.Sprintf("rfp_%s.%s", uuid.New().String(), fileType)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredFile{
		Filename: uniqueFilename,
		Path:     filePath,
		FileType: fileType,
	}, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
