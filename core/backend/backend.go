// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/relabs-tech/dataobjects/core/csql"
	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/logger"
)

// Backend serves the data object descriptions
type Backend struct {
	service     *dataobject.Service
	db          *csql.DB
	router      *mux.Router
	corsOrigins []string
}

// Builder is a builder helper for the Backend
type Builder struct {
	// Registry holds all data object classes. This is mandatory.
	Registry *dataobject.Registry
	// Router is a mux router. This is mandatory.
	Router *mux.Router
	// DB is a postgres database, only used to report its health. This is optional.
	DB *csql.DB
	// CORSOrigins are the allowed origins, defaults to all origins. This is optional.
	CORSOrigins []string
	// Now is the clock of generated documents. This is optional.
	Now func() time.Time
}

// New realizes the actual backend and adds its routes to the router
func New(bb *Builder) *Backend {
	if bb.Registry == nil {
		panic("Registry is missing")
	}
	if bb.Router == nil {
		panic("Router is missing")
	}

	service := dataobject.NewService(bb.Registry)
	if bb.Now != nil {
		service.Now = bb.Now
	}
	b := &Backend{
		service:     service,
		db:          bb.DB,
		router:      bb.Router,
		corsOrigins: bb.CORSOrigins,
	}

	b.handleRoutes(b.router)
	return b
}

// Router returns the router of the backend
func (b *Backend) Router() *mux.Router {
	return b.router
}

// handleRoutes adds all handlers and middlewares
func (b *Backend) handleRoutes(router *mux.Router) {
	logger.Default().Debugln("backend: HandleRoutes")

	logger.AddRequestID(router)
	b.handleRecovery(router)
	b.handleCORS(router)
	b.handleCompression(router)

	b.handleHome(router)
	b.handleVersion(router)
	b.handleHealth(router)
	b.handleObjects(router)
	b.handleMaster(router)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
}

// errorResponse is the body of every error
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes body with status 200
func writeJSON(w http.ResponseWriter, r *http.Request, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Errorln("Error 5001: cannot marshal response")
		writeError(w, http.StatusInternalServerError, messageInternalError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// writeError writes the JSON error body
func writeError(w http.ResponseWriter, status int, message string) {
	data, _ := json.Marshal(errorResponse{Error: message})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}
