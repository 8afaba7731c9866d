// Package archive copies finished videos to S3 for safekeeping.
package archive

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"quotereel/config"
)

// Client wraps the AWS SDK S3 client behind the narrow surface we need.
type Client struct {
	client *s3.Client
	bucket string
	prefix string
}

// New builds a client from the standard AWS config/credential chain.
// Returns nil (not an error) when no bucket is configured: archiving is an
// optional enrichment and the pipeline runs without it.
func New(ctx context.Context, cfg config.Config) *Client {
	if cfg.S3Bucket == "" {
		return nil
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (archiving disabled)", err)
		return nil
	}

	return &Client{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		prefix: cfg.S3Prefix,
	}
}

// ArchiveVideo uploads the finished video under <prefix>videos/<basename>.
func (c *Client) ArchiveVideo(ctx context.Context, videoPath string) error {
	f, err := os.Open(videoPath)
	if err != nil {
		return fmt.Errorf("failed to open video for archiving: %w", err)
	}
	defer f.Close()

	key := c.prefix + "videos/" + filepath.Base(videoPath)
	_, err = c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("video/mp4"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive video to s3://%s/%s: %w", c.bucket, key, err)
	}

	log.Printf("Archived video to s3://%s/%s", c.bucket, key)
	return nil
}
