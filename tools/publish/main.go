// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

// publish writes the master document and all data object descriptions to a
// key storage, either a local folder or an S3 bucket.
//
// Without SOURCE_URL the documents are rendered in-process from the compiled
// models plus the manifests in MODEL_MANIFESTS.
package main

import (
	"context"
	"errors"

	"github.com/gorilla/mux"
	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"

	"github.com/relabs-tech/dataobjects/core/backend"
	"github.com/relabs-tech/dataobjects/core/client"
	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/kss"
	"github.com/relabs-tech/dataobjects/core/logger"
	"github.com/relabs-tech/dataobjects/core/manifest"
	"github.com/relabs-tech/dataobjects/models"
)

// Config holds the configuration of the publisher
type Config struct {
	KSSDriver      string `env:"KSS_DRIVER,default=Local" description:"Local or AWSS3"`
	KSSLocalPath   string `env:"KSS_LOCAL_PATH,default=public" description:"the folder for the Local driver"`
	KSSKeyPrefix   string `env:"KSS_KEY_PREFIX" description:"prefix of all S3 keys"`
	AWSBucketName  string `env:"AWS_BUCKET_NAME" description:"the S3 bucket"`
	AWSRegion      string `env:"AWS_REGION,default=eu-central-1" description:"the S3 region"`
	AWSAccessID    string `env:"AWS_ACCESS_ID" description:"optional static access id"`
	AWSAccessKey   string `env:"AWS_ACCESS_KEY" description:"optional static access key"`
	SourceURL      string `env:"SOURCE_URL" description:"optional running service to publish from"`
	ModelManifests string `env:"MODEL_MANIFESTS" description:"optional directory with JSON class manifests"`
	LogLevel       string `env:"LOG_LEVEL,default=info" description:"the log level"`
}

func main() {
	config := &Config{}
	if err := envdecode.Decode(config); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		panic(err)
	}
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		panic(err)
	}
	logger.InitLogger(level)
	rlog := logger.Default()
	ctx := context.Background()

	driver, err := kss.New(ctx, kss.Configuration{
		DriverType:         kss.DriverType(config.KSSDriver),
		LocalConfiguration: &kss.LocalConfiguration{BasePath: config.KSSLocalPath},
		S3Configuration: &kss.S3Configuration{
			AWSBucketName: config.AWSBucketName,
			AWSRegion:     config.AWSRegion,
			AccessID:      config.AWSAccessID,
			AccessKey:     config.AWSAccessKey,
			KeyPrefix:     config.KSSKeyPrefix,
		},
	})
	if err != nil {
		rlog.WithError(err).Fatalln("cannot create key storage")
	}

	source, err := newSource(config)
	if err != nil {
		rlog.WithError(err).Fatalln("cannot create source")
	}

	if _, err := publish(ctx, source, driver); err != nil {
		rlog.WithError(err).Fatalln("publishing failed")
	}
}

// newSource returns a client for the remote service or for an in-process backend
func newSource(config *Config) (client.Client, error) {
	if config.SourceURL != "" {
		return client.NewWithURL(config.SourceURL), nil
	}
	registry := dataobject.NewRegistry()
	if err := models.Register(registry); err != nil {
		return client.Client{}, err
	}
	if config.ModelManifests != "" {
		if err := manifest.Register(registry, config.ModelManifests); err != nil {
			return client.Client{}, err
		}
	}
	router := mux.NewRouter()
	backend.New(&backend.Builder{Registry: registry, Router: router})
	return client.NewWithRouter(router), nil
}
