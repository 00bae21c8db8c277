package applicantinfra

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Archiver implements applicant.Archiver by writing the extracted
// materials text to a bucket, so the raw text survives even if the source
// document is later deleted from the drive.
type S3Archiver struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Archiver creates an archiver writing under the given bucket and key
// prefix.
func NewS3Archiver(client *s3.Client, bucket, prefix string) *S3Archiver {
	return &S3Archiver{
		client: client,
		bucket: bucket,
		prefix: strings.TrimSuffix(prefix, "/"),
	}
}

// Archive stores one document's text under the given key.
func (a *S3Archiver) Archive(ctx context.Context, key, contents string) error {
	fullKey := key
	if a.prefix != "" {
		fullKey = a.prefix + "/" + key
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(fullKey),
		Body:        strings.NewReader(contents),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive document %s: %w", fullKey, err)
	}

	return nil
}
