package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dom/petshop-api/internal/domain"
	"github.com/dom/petshop-api/internal/repository"
	"github.com/dom/petshop-api/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// UploadDir is the storage prefix for every uploaded file.
const UploadDir = "pet-shop"

var (
	ErrNotAnImage   = errors.New("file must be an image")
	ErrFileTooLarge = errors.New("file is too large")
)

type FileService struct {
	fileRepo repository.FileRepository
	store    storage.Store
	maxBytes int64
}

func NewFileService(fileRepo repository.FileRepository, store storage.Store, maxBytes int64) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		store:    store,
		maxBytes: maxBytes,
	}
}

type UploadInput struct {
	Name    string
	Size    int64
	Content io.ReadSeeker
}

// Upload stores an image and records its metadata. The MIME type is
// detected from content, not taken from the client.
func (s *FileService) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	if input.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	mtype, err := mimetype.DetectReader(input.Content)
	if err != nil {
		return nil, fmt.Errorf("detect mime type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, ErrNotAnImage
	}
	if _, err := input.Content.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	key, size, err := s.store.Put(ctx, UploadDir, mtype.Extension(), io.LimitReader(input.Content, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if size > s.maxBytes {
		s.discard(ctx, key)
		return nil, ErrFileTooLarge
	}

	file := &domain.File{
		UUID: uuid.NewString(),
		Name: input.Name,
		Path: key,
		Size: size,
		Type: mtype.String(),
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		s.discard(ctx, key)
		return nil, err
	}
	return file, nil
}

// Open returns the file record and its content. The caller closes the reader.
func (s *FileService) Open(ctx context.Context, uuid string) (*domain.File, io.ReadCloser, error) {
	file, err := s.fileRepo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(ctx, file.Path)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return file, rc, nil
}

func (s *FileService) discard(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		slog.Warn("failed to remove blob", "op", "file.Upload", "key", key, "error", err)
	}
}
