// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objectstore provides an S3-compatible client used to archive the raw
source files of uploaded stories.

Architecture:

  - Infrastructure layer; the story domain only sees the narrow Archiver
    contract it declares itself.
  - Path-style addressing so MinIO, Ceph and R2 endpoints work unchanged.
*/
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/taibuivan/storyhub/internal/platform/constants"
)

// Options configures [New].
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// Client writes archive objects into a single bucket.
type Client struct {
	s3     *s3.Client
	bucket string
}

// New creates an S3 client with static credentials and path-style access.
func New(options Options) (*Client, error) {
	if options.Endpoint == "" || options.AccessKey == "" || options.SecretKey == "" || options.Bucket == "" {
		return nil, fmt.Errorf("objectstore: endpoint, credentials and bucket are required")
	}

	s3Client := s3.New(s3.Options{
		Region:       options.Region,
		BaseEndpoint: aws.String(strings.TrimRight(options.Endpoint, "/")),
		Credentials:  credentials.NewStaticCredentialsProvider(options.AccessKey, options.SecretKey, ""),
		UsePathStyle: true,
	})

	return &Client{s3: s3Client, bucket: options.Bucket}, nil
}

// Key returns the object key under which a story's source file is stored.
func Key(storyID, filename string) string {
	return constants.ArchivePrefix + storyID + "/" + filename
}

// Put stores body under key.
func (c *Client) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// Archive stores the raw source file of an uploaded story under
// stories/<storyID>/<filename>.
func (c *Client) Archive(ctx context.Context, storyID, filename, contentType string, body []byte) error {
	return c.Put(ctx, Key(storyID, filename), contentType, body)
}
