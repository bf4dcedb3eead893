package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"lab_platform_backend/internal/config"
	"lab_platform_backend/internal/util"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider 定义对象存储的预签名接口
type StorageProvider interface {
	// PresignUpload 返回限时上传地址，客户端以 PUT 直传
	PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	// PresignView 返回限时只读地址
	PresignView(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	u, err := p.Client.PresignedPutObject(ctx, p.Config.MinioBucket, key, expiry)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (p *MinioStorageProvider) PresignView(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := p.Client.PresignedGetObject(ctx, p.Config.MinioBucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// LocalStorageProvider 本地存储实现，开发环境与测试用
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	return "/uploads/" + key, nil
}

func (p *LocalStorageProvider) PresignView(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "/uploads/" + key, nil
}

// StorageService 存储服务
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case "minio":
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}
	return &StorageService{Provider: provider}, nil
}

// BuildFileKey 生成对象键 {labId}/{partId}/{studentId}/{uuid}-{fileName}
func BuildFileKey(labID, partID, studentID, fileName string) string {
	return fmt.Sprintf("%s/%s/%s/%s-%s", labID, partID, studentID, uuid.New().String(), fileName)
}

func (s *StorageService) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	return s.Provider.PresignUpload(ctx, key, contentType, util.UploadURLExpiry)
}

// PresignEmbedded 入库时写入记录的长效播放地址
func (s *StorageService) PresignEmbedded(ctx context.Context, key string) (string, error) {
	return s.Provider.PresignView(ctx, key, util.EmbeddedURLExpiry)
}

// PresignView 查询时按需生成的短效播放地址
func (s *StorageService) PresignView(ctx context.Context, key string) (string, error) {
	return s.Provider.PresignView(ctx, key, util.ViewURLExpiry)
}
