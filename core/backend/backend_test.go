// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/dataobjects/core/backend"
	"github.com/relabs-tech/dataobjects/core/client"
	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/logger"
	"github.com/relabs-tech/dataobjects/models"
)

var testTime = time.Date(2024, 5, 17, 8, 30, 0, 0, time.UTC)

func newTestBackend(t *testing.T, classes ...*dataobject.Class) (*mux.Router, client.Client) {
	t.Helper()
	registry := dataobject.NewRegistry()
	require.NoError(t, models.Register(registry))
	for _, c := range classes {
		require.NoError(t, registry.Register(c))
	}
	router := mux.NewRouter()
	backend.New(&backend.Builder{
		Registry: registry,
		Router:   router,
		Now:      func() time.Time { return testTime },
	})
	return router, client.NewWithRouter(router)
}

func TestObjectDescription(t *testing.T) {
	_, c := newTestBackend(t)

	var d dataobject.ObjectDescription
	status, err := c.Object("user", &d)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user", d.ID)
	assert.Equal(t, "User", d.Name)
	assert.Equal(t, dataobject.Version, d.Version)
	assert.Equal(t, "2024-05-17T08:30:00Z", d.Metadata.CreatedAt)
	assert.Equal(t, "2024-05-17T08:30:00Z", d.Metadata.UpdatedAt)

	// trailing slash and any case
	var raw1, raw2, raw3 []byte
	_, err = c.RawGet("/api/object/user/", &raw1)
	require.NoError(t, err)
	_, err = c.RawGet("/api/object/User", &raw2)
	require.NoError(t, err)
	_, err = c.RawGet("/api/object/USER/", &raw3)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw1), string(raw2))
	assert.JSONEq(t, string(raw1), string(raw3))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw1, &doc))
	list := doc["operations"].(map[string]any)["list"]
	assert.Equal(t, map[string]any{
		"enabled":           true,
		"endpoint":          "/api/user",
		"method":            "GET",
		"pagination":        true,
		"default_page_size": float64(20),
	}, list)
}

func TestObjectErrors(t *testing.T) {
	broken := &dataobject.Class{Name: "Broken", Fields: []dataobject.FieldDefinition{{Name: "x"}, {Name: "x"}}}
	router, _ := newTestBackend(t, broken)

	testCases := []struct {
		path   string
		status int
		body   string
	}{
		{"/api/object/widget", http.StatusNotFound, `{"error": "Object type not found"}`},
		{"/api/object/widget/", http.StatusNotFound, `{"error": "Object type not found"}`},
		{"/api/object/dataobject", http.StatusNotFound, `{"error": "Object type not found"}`},
		{"/api/object/user.json", http.StatusBadRequest, `{"error": "Invalid object slug"}`},
		{"/api/object/us%20er", http.StatusBadRequest, `{"error": "Invalid object slug"}`},
		{"/api/object/broken", http.StatusInternalServerError, `{"error": "Internal server error"}`},
		{"/api/master", http.StatusInternalServerError, `{"error": "Internal server error"}`},
		{"/api/nothing", http.StatusNotFound, `{"error": "Not found"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestMaster(t *testing.T) {
	_, c := newTestBackend(t)

	var master dataobject.MasterDocument
	for _, path := range []string{"/api/master", "/api/master/"} {
		status, err := c.RawGet(path, &master)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
	}
	assert.Equal(t, "Master Document", master.Name)
	assert.Equal(t, "System", master.Metadata.CreatedBy)
	assert.Equal(t, "2024-05-17T08:30:00Z", master.Metadata.CreatedAt)
	require.Len(t, master.DataObjects, 1)
	assert.Equal(t, "/api/object/user/", master.DataObjects[0].URI)
	assert.Equal(t, []string{"create", "read", "update", "delete", "list"}, master.DataObjects[0].Operations)
}

func TestMiscRoutes(t *testing.T) {
	_, c := newTestBackend(t)

	var body []byte
	_, err := c.RawGet("/", &body)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(body))

	backend.Version = "1.2.3"
	var version map[string]string
	_, err = c.RawGet("/version", &version)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version["version"])

	var health map[string]string
	_, header, err := c.RawGetWithHeader("/health", nil, &health)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "ok", "database": "disabled"}, health)
	assert.NotEmpty(t, header.Get(logger.RequestIDHeader))
}

func TestCompression(t *testing.T) {
	_, c := newTestBackend(t)

	var body []byte
	_, header, err := c.RawGetWithHeader("/api/object/user", map[string]string{"Accept-Encoding": "gzip"}, &body)
	require.NoError(t, err)
	assert.Equal(t, "gzip", header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(bytes.NewReader(body))
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)

	var d dataobject.ObjectDescription
	require.NoError(t, json.Unmarshal(plain, &d))
	assert.Equal(t, "user", d.ID)
}

func TestCORS(t *testing.T) {
	router, _ := newTestBackend(t)

	r := httptest.NewRequest(http.MethodOptions, "/api/master", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodGet, "/api/master", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	router, _ := newTestBackend(t)
	router.HandleFunc("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, rec.Body.String())
}

func TestBuilderValidation(t *testing.T) {
	assert.Panics(t, func() { backend.New(&backend.Builder{Router: mux.NewRouter()}) })
	assert.Panics(t, func() { backend.New(&backend.Builder{Registry: dataobject.NewRegistry()}) })
}
