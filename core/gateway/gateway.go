// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

/*
Package gateway runs the description API behind AWS API Gateway

API Gateway proxy events are converted into regular HTTP requests and served
by the mux router, so the very same routes work in a Lambda function and in a
plain HTTP server.
*/
package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gorilla/mux"

	"github.com/relabs-tech/dataobjects/core/logger"
)

// Gateway adapts API Gateway proxy events to a router
type Gateway struct {
	router *mux.Router
}

// New returns a gateway for router
func New(router *mux.Router) *Gateway {
	return &Gateway{router: router}
}

// Start hands control to the Lambda runtime. It never returns.
func (g *Gateway) Start() {
	logger.Default().Infoln("starting lambda handler")
	lambda.Start(g.Handle)
}

// Handle serves a single proxy event
func (g *Gateway) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	r, err := NewRequest(ctx, event)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("Error 5100: cannot convert proxy event")
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
			Body:       `{"error":"Bad request"}`,
		}, nil
	}
	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, r)
	return NewResponse(rec.Result().Header, rec.Code, rec.Body.Bytes()), nil
}

// NewRequest converts a proxy event into an HTTP request
func NewRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	path := event.Path
	if path == "" {
		path = "/"
	}
	u, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path '%s': %w", event.Path, err)
	}

	query := url.Values{}
	for key, values := range event.MultiValueQueryStringParameters {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	for key, value := range event.QueryStringParameters {
		if _, ok := query[key]; !ok {
			query.Set(key, value)
		}
	}
	u.RawQuery = query.Encode()

	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 body: %w", err)
		}
		body = string(decoded)
	}

	method := event.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}
	r, err := http.NewRequestWithContext(ctx, method, u.String(), strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	for key, values := range event.MultiValueHeaders {
		for _, value := range values {
			r.Header.Add(key, value)
		}
	}
	for key, value := range event.Headers {
		if r.Header.Get(key) == "" {
			r.Header.Set(key, value)
		}
	}
	if sourceIP := event.RequestContext.Identity.SourceIP; sourceIP != "" {
		r.RemoteAddr = sourceIP
	}
	return r, nil
}

// NewResponse converts a recorded HTTP response into a proxy response. Bodies
// which are not valid UTF-8, for example compressed ones, are base64 encoded.
func NewResponse(header http.Header, status int, body []byte) events.APIGatewayProxyResponse {
	res := events.APIGatewayProxyResponse{
		StatusCode:        status,
		Headers:           map[string]string{},
		MultiValueHeaders: map[string][]string{},
	}
	for key, values := range header {
		if len(values) > 0 {
			res.Headers[key] = values[len(values)-1]
		}
		res.MultiValueHeaders[key] = append([]string{}, values...)
	}
	if utf8.Valid(body) {
		res.Body = string(body)
	} else {
		res.Body = base64.StdEncoding.EncodeToString(body)
		res.IsBase64Encoded = true
	}
	return res
}
