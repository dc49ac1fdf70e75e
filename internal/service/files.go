package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
)

type FileService struct {
	log   *slog.Logger
	store FileStore
}

// FileStore keeps documents in a namespace per owner.
type FileStore interface {
	List(ctx context.Context, owner string) ([]string, error)
	Save(ctx context.Context, owner, name string, body io.Reader, size int64) error
	Open(ctx context.Context, owner, name string) (io.ReadCloser, error)
}

func NewFileService(log *slog.Logger, store FileStore) *FileService {
	return &FileService{
		log:   log,
		store: store,
	}
}

func (s *FileService) ListFiles(ctx context.Context, owner string) ([]models.FileInfo, error) {
	const op = "service.files.ListFiles"

	names, err := s.store.List(ctx, owner)
	if err != nil {
		s.log.Error("failed to list files", slog.String("op", op), slog.String("owner", owner), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	files := make([]models.FileInfo, 0, len(names))
	for _, n := range names {
		files = append(files, models.FileInfo{Name: n})
	}

	return files, nil
}

func (s *FileService) Upload(ctx context.Context, owner, name string, body io.Reader, size int64) (models.FileInfo, error) {
	const op = "service.files.Upload"

	name, err := CleanFileName(name)
	if err != nil {
		return models.FileInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	if size == 0 {
		return models.FileInfo{}, fmt.Errorf("%s: %w", op, apperrors.ErrFileEmpty)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("owner", owner),
		slog.String("name", name),
	)

	if err := s.store.Save(ctx, owner, name, body, size); err != nil {
		log.Error("failed to store file", sl.Err(err))
		return models.FileInfo{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("file uploaded", slog.Int64("size", size))

	return models.FileInfo{Name: name}, nil
}

// Download returns the file body; the caller must close it.
func (s *FileService) Download(ctx context.Context, owner, name string) (io.ReadCloser, string, error) {
	const op = "service.files.Download"

	name, err := CleanFileName(name)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	body, err := s.store.Open(ctx, owner, name)
	if err != nil {
		s.log.Warn("failed to open file", slog.String("op", op), slog.String("name", name), sl.Err(err))
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return body, name, nil
}

// CleanFileName strips any directory part, including Windows separators.
func CleanFileName(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", apperrors.ErrFileNameRequired
	}
	return name, nil
}
