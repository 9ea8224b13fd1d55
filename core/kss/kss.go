// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

// Package kss provides the key storage service which publishes generated
// description documents outside of the running service.
// There are currently two possible backends: a local file system and AWS S3
package kss

import (
	"context"
	"fmt"
	"strings"
)

// Driver defines the interface for the KSS service
type Driver interface {
	UploadData(ctx context.Context, key string, data []byte, contentType string) error
	ListAllWithPrefix(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
	DeleteAllWithPrefix(ctx context.Context, prefix string) error
}

// DriverType represents the different type of KSS Drivers
type DriverType string

// DriverTypeLocal is the local filesystem implementation of the KSS service
const DriverTypeLocal DriverType = "Local"

// DriverTypeAWSS3 is the AWS S3 implementation of the KSS service
const DriverTypeAWSS3 DriverType = "AWSS3"

// None is used when there is no KSS implementation
const None DriverType = ""

// Configuration contains the configuration for the KSS service
type Configuration struct {
	DriverType         DriverType
	LocalConfiguration *LocalConfiguration
	S3Configuration    *S3Configuration
}

// LocalConfiguration contains the configuration for the local filesystem KSS service
type LocalConfiguration struct {
	BasePath string
}

// S3Configuration contains the configuration for the AWS S3 KSS service
type S3Configuration struct {
	AWSBucketName string
	AWSRegion     string
	AccessID      string
	AccessKey     string
	KeyPrefix     string
}

// New returns the driver selected by the configuration
func New(ctx context.Context, config Configuration) (Driver, error) {
	switch config.DriverType {
	case DriverTypeLocal:
		if config.LocalConfiguration == nil {
			return nil, fmt.Errorf("kss: local configuration is missing")
		}
		return NewLocalFilesystem(*config.LocalConfiguration)
	case DriverTypeAWSS3:
		if config.S3Configuration == nil {
			return nil, fmt.Errorf("kss: S3 configuration is missing")
		}
		return NewS3(ctx, *config.S3Configuration)
	case None:
		return nil, fmt.Errorf("kss: no driver configured")
	}
	return nil, fmt.Errorf("kss: unknown driver type '%s'", config.DriverType)
}

// validKey rejects keys which could escape the storage root
func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("kss: empty key")
	}
	if strings.Contains(key, "..") {
		return fmt.Errorf("kss: '..' is not allowed in a key")
	}
	return nil
}
