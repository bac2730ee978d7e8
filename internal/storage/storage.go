package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"consultbr_backend/internal/config"
)

// ErrDisabled - хранилище не настроено (storage.type = none)
var ErrDisabled = errors.New("file storage is disabled")

// Storage - бэкенд для загруженных файлов (изображения портфолио, вложения, питч-деки)
type Storage interface {
	// Save сохраняет файл по ключу key
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete удаляет файл; отсутствие файла не ошибка
	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	// URL возвращает публичный адрес файла
	URL(key string) string
}

// Типы хранилищ
const (
	TypeNone         = "none"
	TypeLocal        = "local"
	TypeS3           = "s3"
	TypeCloudflareR2 = "cloudflare_r2"
)

// New создает хранилище по секции storage конфига
func New(cfg *config.Config) (Storage, error) {
	s := cfg.Storage
	switch s.Type {
	case "", TypeNone:
		return Disabled{}, nil
	case TypeLocal:
		return NewLocalStorage(s.BasePath, s.BaseURL)
	case TypeS3, TypeCloudflareR2:
		return NewObjectStorage(ObjectConfig{
			Provider:   s.Type,
			Bucket:     s.Bucket,
			Region:     s.Region,
			AccessKey:  s.AccessKey,
			SecretKey:  s.SecretKey,
			Endpoint:   s.Endpoint,
			BaseURL:    s.BaseURL,
			PublicRead: s.PublicRead,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", s.Type)
	}
}

// Disabled отклоняет любые операции
type Disabled struct{}

func (Disabled) Save(context.Context, string, io.Reader, string) error { return ErrDisabled }
func (Disabled) Delete(context.Context, string) error                  { return ErrDisabled }
func (Disabled) Exists(context.Context, string) (bool, error)          { return false, ErrDisabled }
func (Disabled) URL(string) string                                     { return "" }
