package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sc "github.com/dkovalev7/scentshop/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ErrBadImageExtension is returned for upload filenames that are not images.
var ErrBadImageExtension = fmt.Errorf("unsupported image extension")

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadTicket is a presigned slot for one image upload.
type UploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// UploadService hands out presigned PUT URLs for perfume images. The server
// never proxies image bytes; clients upload straight to object storage.
type UploadService struct {
	config *sc.Config
}

func NewUploadService(cfg *sc.Config) *UploadService {
	return &UploadService{config: cfg}
}

// GetRandomStorageKey builds an object key for an uploaded image, keeping the
// original extension.
func GetRandomStorageKey(ext string) string {
	return fmt.Sprintf("perfumes/%v%s", uuid.New(), ext)
}

func (s *UploadService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// CreateImageUploadTicket validates the filename extension and returns a
// presigned PUT URL plus the public URL the image will be served from.
func (s *UploadService) CreateImageUploadTicket(ctx context.Context, filename string) (*UploadTicket, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return nil, ErrBadImageExtension
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(ext)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, err
	}

	return &UploadTicket{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key,
	}, nil
}
