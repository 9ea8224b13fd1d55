// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package kss

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/relabs-tech/dataobjects/core/logger"
)

// S3 is the implementation of the KSS Driver for AWS S3
type S3 struct {
	client      *s3.Client
	bucket      string
	baseKeyName string
}

// NewS3 returns a new S3. Without AccessID the default credential chain is used.
func NewS3(ctx context.Context, kssConfig S3Configuration) (*S3, error) {
	if kssConfig.AWSBucketName == "" {
		return nil, fmt.Errorf("AWSBucketName must not be empty")
	}

	options := []func(*config.LoadOptions) error{config.WithRegion(kssConfig.AWSRegion)}
	if kssConfig.AccessID != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(kssConfig.AccessID, kssConfig.AccessKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, err
	}
	logger.Default().Debugln("KSS S3 enabled")
	return &S3{
		client:      s3.NewFromConfig(cfg),
		bucket:      kssConfig.AWSBucketName,
		baseKeyName: kssConfig.KeyPrefix,
	}, nil
}

// UploadData uploads data into a new key object
func (s *S3) UploadData(ctx context.Context, key string, data []byte, contentType string) error {
	if err := validKey(key); err != nil {
		return err
	}
	uploader := manager.NewUploader(s.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.baseKeyName + key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload '%s': %w", s.baseKeyName+key, err)
	}
	logger.FromContext(ctx).Infoln("Uploaded", s.baseKeyName+key)
	return nil
}

// ListAllWithPrefix lists all keys with prefix. The returned keys do not
// carry the configured key prefix.
func (s *S3) ListAllWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.baseKeyName + prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("Could not ListObjectsV2 from", s.bucket)
			return nil, err
		}
		for _, item := range page.Contents {
			keys = append(keys, aws.ToString(item.Key)[len(s.baseKeyName):])
		}
	}
	return keys, nil
}

// Delete deletes the key object
func (s *S3) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.baseKeyName + key),
	})
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("Could not delete", s.baseKeyName+key)
		return err
	}
	logger.FromContext(ctx).Infoln("Deleted", s.baseKeyName+key)
	return nil
}

// DeleteAllWithPrefix deletes all keys starting with prefix
func (s *S3) DeleteAllWithPrefix(ctx context.Context, prefix string) error {
	keys, err := s.ListAllWithPrefix(ctx, prefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
