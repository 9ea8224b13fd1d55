// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package logger

import (
	"context"
	"fmt"
	"io"
	"log/syslog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	lsyslog "github.com/sirupsen/logrus/hooks/syslog"
)

// Type for the context keys
type contextKeyRequestLoggerType struct{}

var contextKeyRequestLogger = &contextKeyRequestLoggerType{}

// Context key for the request ID
const requestIDLoggerKey string = "requestID"

// RequestIDHeader is the response header carrying the request ID
const RequestIDHeader = "X-Request-ID"

// Destination is where log statements go
type Destination string

// supported log destinations
const (
	DestinationConsole Destination = "console"
	DestinationFile    Destination = "file"
	DestinationSyslog  Destination = "syslog"
)

// syslogTag identifies the service in the system log
const syslogTag = "dataobjects"

// InitLogger sets up the custom time formatter for all log statements.
func InitLogger(logLevel logrus.Level) {
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	logrus.SetFormatter(customFormatter)
	logrus.SetLevel(logLevel)
}

// Configure routes the standard logger to destination. For DestinationFile the
// log is appended to filename. The returned closer releases the destination and
// must be called on shutdown.
func Configure(destination Destination, filename string) (io.Closer, error) {
	switch destination {
	case "", DestinationConsole:
		logrus.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	case DestinationFile:
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file %s: %w", filename, err)
		}
		logrus.SetOutput(f)
		return f, nil
	case DestinationSyslog:
		hook, err := lsyslog.NewSyslogHook("", "", syslog.LOG_INFO|syslog.LOG_DAEMON, syslogTag)
		if err != nil {
			return nil, fmt.Errorf("cannot connect to syslog: %w", err)
		}
		logrus.AddHook(hook)
		logrus.SetOutput(io.Discard)
		return hook.Writer, nil
	default:
		return nil, fmt.Errorf("unknown log destination '%s'", destination)
	}
}

// AddRequestID attaches a request logger to every request. An X-Request-ID
// header sent by the caller, e.g. API Gateway, is kept, otherwise a new ID is
// generated. The ID is echoed in the X-Request-ID response header.
func AddRequestID(router *mux.Router) {
	router.Use(func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, _ := ContextWithRequestID(r.Context(), r.Header.Get(RequestIDHeader))
			w.Header().Set(RequestIDHeader, RequestIDFromContext(ctx))
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	})
}

// Default returns a logger without a request ID.
func Default() *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger())
}

// ContextWithLogger returns a new context with a logger if the given context has no logger yet. If
// the context already has a logger the given context will be returned.
func ContextWithLogger(ctx context.Context) (context.Context, *logrus.Entry) {
	return ContextWithRequestID(ctx, "")
}

// ContextWithRequestID is ContextWithLogger with a given request ID. An empty
// id generates a new one.
func ContextWithRequestID(ctx context.Context, id string) (context.Context, *logrus.Entry) {
	if ctx == nil {
		ctx = context.Background()
	}
	if rlog, ok := ctx.Value(contextKeyRequestLogger).(*logrus.Entry); ok {
		return ctx, rlog
	}
	if id == "" {
		id = uuid.NewString()
	}
	rlog := Default().WithField(requestIDLoggerKey, id)
	return context.WithValue(ctx, contextKeyRequestLogger, rlog), rlog
}

// FromContext returns the logger from the context. Without one, e.g. for a
// nil context, the default logger is returned.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if rlog, ok := ctx.Value(contextKeyRequestLogger).(*logrus.Entry); ok {
			return rlog
		}
	}
	return Default()
}

// RequestIDFromContext returns the request id for the given context.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := FromContext(ctx).Data[requestIDLoggerKey].(string)
	return id
}
