// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/relabs-tech/dataobjects/core/logger"
)

// health is the body of the health route
type health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (b *Backend) handleHealth(router *mux.Router) {
	logger.Default().Debugln("health")
	logger.Default().Debugln("  handle health route: /health GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, health{Status: "ok", Database: b.db.Health(r.Context())})
	}).Methods(http.MethodOptions, http.MethodGet)
}

// handleHome answers the root route with a greeting
func (b *Backend) handleHome(router *mux.Router) {
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Hello, World!"))
	}).Methods(http.MethodOptions, http.MethodGet)
}
