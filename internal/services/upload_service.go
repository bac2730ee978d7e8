package services

import (
	"bufio"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/internal/storage"
	"consultbr_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type UploadService interface {
	// Upload кладет файл в хранилище под uploads/<userID>/ и возвращает публичный адрес
	Upload(ctx context.Context, userID, filename string, size int64, r io.Reader) (*dto.UploadResponse, error)
}

type uploadService struct {
	storage      storage.Storage
	maxSize      int64
	allowedTypes map[string]bool
}

func NewUploadService(store storage.Storage, maxSize int64, allowedTypes []string) UploadService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &uploadService{
		storage:      store,
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

func (s *uploadService) Upload(ctx context.Context, userID, filename string, size int64, r io.Reader) (*dto.UploadResponse, error) {
	if size <= 0 {
		return nil, apperrors.NewBadRequestError("File is empty")
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, apperrors.ErrFileTooLarge.WithDetails(map[string]int64{"maxSize": s.maxSize})
	}

	// Тип определяем по содержимому, а не по заголовку клиента
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, apperrors.InternalError(err)
	}
	contentType := DetectContentType(head, filename)
	if !s.allowedTypes[contentType] {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"contentType": contentType})
	}

	key := path.Join("uploads", userID, uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
	if err := s.storage.Save(ctx, key, br, contentType); err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			return nil, apperrors.ErrStorageUnavailable
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "file uploaded", "key", key, "size", size, "content_type", contentType)
	return &dto.UploadResponse{
		URL:         s.storage.URL(key),
		Path:        key,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// DetectContentType - сниффинг по содержимому; для текстовых форматов, которые
// сниффер не различает, берется тип по расширению
func DetectContentType(head []byte, filename string) string {
	detected, _, _ := mime.ParseMediaType(http.DetectContentType(head))
	if detected == "application/octet-stream" || detected == "text/plain" || detected == "application/zip" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
			if t, _, err := mime.ParseMediaType(byExt); err == nil {
				return t
			}
		}
	}
	return detected
}
