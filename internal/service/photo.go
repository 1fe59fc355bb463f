package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutrilens/backend/config"
)

// PhotoStore persists a captured meal photo and returns a URL for the
// logged item. Implementations must accept a self-describing data URI.
type PhotoStore interface {
	StorePhoto(ctx context.Context, dataURI string) (string, error)
}

// S3PhotoStore uploads meal photos to S3 so logged items carry a
// remote URL instead of an inline data URI.
type S3PhotoStore struct {
	s3Config *config.S3Config
}

// NewS3PhotoStore creates a new S3PhotoStore instance.
func NewS3PhotoStore(s3Config *config.S3Config) *S3PhotoStore {
	return &S3PhotoStore{s3Config: s3Config}
}

// StorePhoto decodes the data URI and uploads the bytes to S3,
// returning the public object URL.
func (p *S3PhotoStore) StorePhoto(ctx context.Context, dataURI string) (string, error) {
	mimeType, payload, err := splitDataURI(dataURI)
	if err != nil {
		return "", fmt.Errorf("invalid photo payload: %w", err)
	}

	imageData, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode photo data: %w", err)
	}

	fileName := fmt.Sprintf("food-photos/%s.%s", uuid.New().String(), extensionFor(mimeType))

	_, err = p.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", p.s3Config.BucketName, fileName)
	log.Printf("[PhotoStore] uploaded meal photo to %s", publicURL)

	return publicURL, nil
}

func extensionFor(mimeType string) string {
	switch strings.TrimPrefix(mimeType, "image/") {
	case "png":
		return "png"
	case "webp":
		return "webp"
	default:
		return "jpg"
	}
}
