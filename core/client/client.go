// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

/*
Package client provides easy and fast in-process access to the description API

Instead of marshalling HTTP, the client talks directly to the mux router. The client
is the tool of choice for unit tests. With NewWithURL the same client talks to a
remote server.
*/
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

// Client provides easy access to the REST API.
type Client struct {
	router     *mux.Router
	httpClient *http.Client
	url        string
	ctx        context.Context

	defaultHeaders map[string]string
}

// NewWithRouter creates a client to make pseudo-REST requests to the backend,
// through the mux router
//
// WithContext() specifies a different base context all together.
func NewWithRouter(router *mux.Router) Client {
	return Client{
		router:         router,
		defaultHeaders: map[string]string{},
	}
}

// NewWithURL creates a client to make REST requests to the backend
func NewWithURL(url string) Client {
	return Client{
		url:            strings.TrimSuffix(url, "/"),
		httpClient:     &http.Client{Timeout: 20 * time.Second},
		defaultHeaders: map[string]string{},
	}
}

// WithHeader returns a new client with a default header added
func (c Client) WithHeader(key string, value string) Client {
	headers := make(map[string]string, len(c.defaultHeaders)+1)
	for k, v := range c.defaultHeaders {
		headers[k] = v
	}
	headers[key] = value
	c.defaultHeaders = headers
	return c
}

// WithContext returns a new client with specific request context
func (c Client) WithContext(ctx context.Context) Client {
	c.ctx = ctx
	return c
}

// Context returns the request context of the client
func (c Client) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Master reads the master document into result
func (c Client) Master(result interface{}) (int, error) {
	return c.RawGet("/api/master", result)
}

// Object reads the description of the data object type slug into result
func (c Client) Object(slug string, result interface{}) (int, error) {
	return c.RawGet("/api/object/"+url.PathEscape(slug), result)
}

// RawGet gets a resource from a path. If result is a *[]byte, the raw body is
// returned, otherwise the body is decoded as JSON. Status codes other than 200
// are reported as error together with the body.
func (c Client) RawGet(path string, result interface{}) (int, error) {
	status, _, err := c.RawGetWithHeader(path, nil, result)
	return status, err
}

// RawGetWithHeader is RawGet with additional request headers. It also returns
// the response header.
func (c Client) RawGetWithHeader(path string, header map[string]string, result interface{}) (int, http.Header, error) {
	r, err := http.NewRequestWithContext(c.Context(), http.MethodGet, c.url+path, nil)
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}
	for _, headers := range []map[string]string{c.defaultHeaders, header} {
		for key, value := range headers {
			r.Header.Add(key, value)
		}
	}

	status, resHeader, body, err := c.do(r)
	if err != nil {
		return status, nil, err
	}
	switch status {
	case http.StatusOK:
		return status, resHeader, decode(body, result)
	case http.StatusNoContent:
		return status, resHeader, nil
	}
	return status, resHeader, fmt.Errorf("unexpected status %d for %s: %s",
		status, path, strings.TrimSpace(string(body)))
}

// do sends r either through the router or over the network
func (c Client) do(r *http.Request) (int, http.Header, []byte, error) {
	if c.router != nil {
		rec := httptest.NewRecorder()
		c.router.ServeHTTP(rec, r)
		return rec.Code, rec.Result().Header, rec.Body.Bytes(), nil
	}
	res, err := c.httpClient.Do(r)
	if err != nil {
		return http.StatusBadGateway, nil, nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	return res.StatusCode, res.Header, body, err
}

// decode stores body in result, raw for *[]byte and as JSON otherwise
func decode(body []byte, result interface{}) error {
	switch r := result.(type) {
	case nil:
		return nil
	case *[]byte:
		*r = body
		return nil
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, result)
}
