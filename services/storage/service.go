package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/notestack/interfaces"
	"github.com/customeros/notestack/internal/models"
	"github.com/customeros/notestack/internal/tracing"
	"github.com/customeros/notestack/internal/utils"
	"github.com/customeros/notestack/services/storage/aws_client"
)

// ImageStorage implements ImageStorageService on top of an S3-compatible
// bucket. Object keys double as the external identifier stored on notes.
type ImageStorage struct {
	client     aws_client.S3Client
	bucketName string
	isPublic   bool
	cdnDomain  string // Optional CDN domain for public URLs
	baseURL    string // Fallback public URL prefix when no CDN is configured
}

// StorageConfig holds configuration for object storage
type StorageConfig struct {
	BucketName string
	IsPublic   bool   // Whether objects should be publicly accessible
	CDNDomain  string // Optional CDN domain for public URLs
	BaseURL    string // Bucket-style URL prefix used when CDNDomain is empty
}

// NewImageStorage creates an image storage service over the given client
func NewImageStorage(client aws_client.S3Client, config StorageConfig) interfaces.ImageStorageService {
	return &ImageStorage{
		client:     client,
		bucketName: config.BucketName,
		isPublic:   config.IsPublic,
		cdnDomain:  config.CDNDomain,
		baseURL:    config.BaseURL,
	}
}

// Upload stores the payload under a fresh key inside folder and returns the
// attachment reference. The key, folder prefix included, is the stable
// external identifier; the URL is only the current retrieval locator.
func (s *ImageStorage) Upload(ctx context.Context, folder string, data []byte, contentType string) (*models.AttachmentRef, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ImageStorage.Upload")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)

	key := folder + "/" + uuid.NewString() + "." + utils.GetFileExtensionFromContentType(contentType)
	span.SetTag("attachment.publicId", key)

	uploadInput := s3manager.UploadInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		uploadInput.ContentType = aws.String(contentType)
	}

	// Set ACL if public
	if s.isPublic {
		uploadInput.ACL = aws.String("public-read")
	}

	if err := s.client.Upload(ctx, uploadInput); err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to upload image")
	}

	return &models.AttachmentRef{
		PublicID: key,
		URL:      s.GetPublicURL(key),
	}, nil
}

// Delete removes the blob for the identifier. A missing object is treated as
// already deleted and reported as success.
func (s *ImageStorage) Delete(ctx context.Context, publicID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ImageStorage.Delete")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	span.SetTag("attachment.publicId", publicID)

	err := s.client.Delete(ctx, s.bucketName, publicID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to delete image")
	}
	return nil
}

// GetPublicURL returns a public URL for the object
func (s *ImageStorage) GetPublicURL(key string) string {
	// Use CDN domain if provided
	if s.cdnDomain != "" {
		return "https://" + s.cdnDomain + "/" + key
	}

	return s.baseURL + "/" + key
}

func isNotFound(err error) bool {
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		switch awsErr.Code() {
		case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
			return true
		}
	}
	return false
}
