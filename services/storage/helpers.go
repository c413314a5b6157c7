package storage

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"

	"github.com/customeros/notestack/interfaces"
	"github.com/customeros/notestack/services/storage/aws_client"
)

// NewS3ImageStorage creates an ImageStorageService configured for AWS S3
func NewS3ImageStorage(awsRegion, accessKeyID, accessKeySecret, bucketName, cdnDomain string, isPublic bool) interfaces.ImageStorageService {
	s3Client := aws_client.NewS3Client(&aws.Config{
		Region:      aws.String(awsRegion),
		Credentials: credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
	})

	return NewImageStorage(s3Client, StorageConfig{
		BucketName: bucketName,
		IsPublic:   isPublic,
		CDNDomain:  cdnDomain,
		BaseURL:    fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucketName, awsRegion),
	})
}

// NewR2ImageStorage creates an ImageStorageService configured for Cloudflare R2
func NewR2ImageStorage(accountID, accessKeyID, accessKeySecret, bucketName, cdnDomain string, isPublic bool) interfaces.ImageStorageService {
	r2Client := aws_client.NewS3Client(&aws.Config{
		Endpoint:         aws.String("https://" + accountID + ".r2.cloudflarestorage.com"),
		Region:           aws.String("auto"),
		Credentials:      credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
	})

	return NewImageStorage(r2Client, StorageConfig{
		BucketName: bucketName,
		IsPublic:   isPublic,
		CDNDomain:  cdnDomain,
		BaseURL:    fmt.Sprintf("https://%s.%s.r2.cloudflarestorage.com", bucketName, accountID),
	})
}
