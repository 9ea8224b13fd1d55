// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type ctxKey struct{}

func testRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/object/{slug}", func(w http.ResponseWriter, r *http.Request) {
		slug := mux.Vars(r)["slug"]
		if slug == "widget" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "Object type not found"}` + "\n"))
			return
		}
		w.Header().Set("X-Slug", slug)
		w.Write([]byte(`{"id":"` + slug + `","token":"` + r.Header.Get("Authorization") + `"}`))
	})
	router.HandleFunc("/api/master", func(w http.ResponseWriter, r *http.Request) {
		if v, ok := r.Context().Value(ctxKey{}).(string); ok {
			w.Header().Set("X-Context", v)
		}
		w.Write([]byte(`{"name":"Master Document"}`))
	})
	router.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return router
}

func TestClientWithRouter(t *testing.T) {
	client := NewWithRouter(testRouter())

	var object map[string]string
	status, err := client.Object("user", &object)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user", object["id"])

	status, err = client.Object("widget", &object)
	assert.Equal(t, http.StatusNotFound, status)
	if err == nil {
		t.Fatal("expected an error for an unknown object")
	}
	assert.Contains(t, err.Error(), "Object type not found")

	var raw []byte
	_, header, err := client.RawGetWithHeader("/api/object/note", nil, &raw)
	if err != nil {
		t.Fatal(err)
	}
	assert.JSONEq(t, `{"id":"note","token":""}`, string(raw))
	assert.Equal(t, "note", header.Get("X-Slug"))

	status, err = client.RawGet("/empty", &raw)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestClientHeadersAndContext(t *testing.T) {
	base := NewWithRouter(testRouter())
	authorized := base.WithHeader("Authorization", "Bearer 123")

	var object map[string]string
	if _, err := authorized.Object("user", &object); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Bearer 123", object["token"])

	// the original client is not modified
	if _, err := base.Object("user", &object); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "", object["token"])

	assert.Equal(t, context.Background(), base.Context())
	ctx := context.WithValue(context.Background(), ctxKey{}, "here")
	var master map[string]string
	_, header, err := base.WithContext(ctx).RawGetWithHeader("/api/master", nil, &master)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "here", header.Get("X-Context"))
	assert.Equal(t, "Master Document", master["name"])
}

func TestClientWithURL(t *testing.T) {
	server := httptest.NewServer(testRouter())
	defer server.Close()

	client := NewWithURL(server.URL + "/")

	var master map[string]string
	status, err := client.Master(&master)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Master Document", master["name"])

	var object map[string]string
	status, err = client.Object("widget", &object)
	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, status)
}
