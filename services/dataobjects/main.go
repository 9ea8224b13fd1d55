// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joeshaw/envdecode"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/relabs-tech/dataobjects/core/backend"
	"github.com/relabs-tech/dataobjects/core/csql"
	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/gateway"
	"github.com/relabs-tech/dataobjects/core/logger"
	"github.com/relabs-tech/dataobjects/core/manifest"
	"github.com/relabs-tech/dataobjects/models"
)

// Service holds the configuration for this service
//
// use POSTGRES="host=localhost port=5432 user=postgres dbname=postgres sslmode=disable"
type Service struct {
	HTTPHost         string   `env:"HTTP_HOST,default=0.0.0.0" description:"the interface to listen on"`
	HTTPPort         string   `env:"HTTP_PORT,default=1082" description:"the port to listen on"`
	LogLevel         string   `env:"LOG_LEVEL,default=info" description:"the log level"`
	LogDestination   string   `env:"LOG_DESTINATION,default=console" description:"console, file or syslog"`
	LogFile          string   `env:"LOG_FILE,default=infrastructure.log" description:"the log file for destination file"`
	CORSOrigins      []string `env:"CORS_ORIGINS" description:"semicolon separated list of allowed origins"`
	ModelManifests   string   `env:"MODEL_MANIFESTS" description:"optional directory with JSON class manifests"`
	Postgres         string   `env:"POSTGRES" description:"the optional connection string for the Postgres DB"`
	PostgresPassword string   `env:"POSTGRES_PASSWORD" description:"optional password for the Postgres DB"`
	PostgresSchema   string   `env:"POSTGRES_SCHEMA,default=dataobjects" description:"the database schema"`
	LambdaFunction   string   `env:"AWS_LAMBDA_FUNCTION_NAME" description:"set by AWS when running in lambda"`
}

func main() {
	service := &Service{}
	if err := envdecode.Decode(service); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, service); err != nil {
		logger.Default().WithError(err).Errorln("service stopped")
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is done. Every resource it opens is released before it
// returns, in lambda mode it never returns.
func run(ctx context.Context, service *Service) error {
	level, err := logrus.ParseLevel(service.LogLevel)
	if err != nil {
		return err
	}
	logger.InitLogger(level)
	closer, err := logger.Configure(logger.Destination(service.LogDestination), service.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()
	rlog := logger.Default()

	registry := dataobject.NewRegistry()
	if err := models.Register(registry); err != nil {
		return fmt.Errorf("cannot register models: %w", err)
	}
	if service.ModelManifests != "" {
		if err := manifest.Register(registry, service.ModelManifests); err != nil {
			return fmt.Errorf("cannot register manifests from %s: %w", service.ModelManifests, err)
		}
	}

	var db *csql.DB
	if service.Postgres != "" {
		dsn := csql.DataSourceName(service.Postgres, service.PostgresPassword)
		db, err = csql.OpenWithSchema(ctx, dsn, service.PostgresSchema)
		if err != nil {
			// the database only backs the health report
			rlog.WithError(err).Errorln("continuing without database")
		} else {
			defer db.Close()
		}
	}

	router := mux.NewRouter()
	backend.New(&backend.Builder{
		Registry:    registry,
		Router:      router,
		DB:          db,
		CORSOrigins: service.CORSOrigins,
	})

	if service.LambdaFunction != "" {
		// the lambda runtime owns the process from here on
		gateway.New(router).Start()
		return nil
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(service.HTTPHost, service.HTTPPort))
	if err != nil {
		return err
	}
	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		rlog.Infoln("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			rlog.WithError(err).Errorln("shutdown failed")
		}
	}()

	rlog.Infoln("listen on", listener.Addr())
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
