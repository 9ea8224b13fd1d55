// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/logger"
)

// error messages, internal details never leave the server
const (
	messageNotFound      = "Object type not found"
	messageInvalidSlug   = "Invalid object slug"
	messageInternalError = "Internal server error"
)

func (b *Backend) handleObjects(router *mux.Router) {
	logger.Default().Debugln("objects")
	logger.Default().Debugln("  handle object route: /api/object/{slug} GET")
	handler := func(w http.ResponseWriter, r *http.Request) {
		rlog := logger.FromContext(r.Context())
		rlog.Infoln("called route for", r.URL, r.Method)

		slug := mux.Vars(r)["slug"]
		description, err := b.service.Description(slug)
		switch {
		case err == nil:
			writeJSON(w, r, description)
		case errors.Is(err, dataobject.ErrInvalidSlug):
			rlog.Debugf("invalid object slug '%s'", slug)
			writeError(w, http.StatusBadRequest, messageInvalidSlug)
		case errors.Is(err, dataobject.ErrNotFound):
			rlog.Debugf("object type '%s' not found", slug)
			writeError(w, http.StatusNotFound, messageNotFound)
		default:
			rlog.WithError(err).Errorf("Error 5002: cannot describe object type '%s'", slug)
			writeError(w, http.StatusInternalServerError, messageInternalError)
		}
	}
	router.HandleFunc("/api/object/{slug}", handler).Methods(http.MethodOptions, http.MethodGet)
	router.HandleFunc("/api/object/{slug}/", handler).Methods(http.MethodOptions, http.MethodGet)
}

func (b *Backend) handleMaster(router *mux.Router) {
	logger.Default().Debugln("master")
	logger.Default().Debugln("  handle master route: /api/master GET")
	handler := func(w http.ResponseWriter, r *http.Request) {
		rlog := logger.FromContext(r.Context())
		rlog.Infoln("called route for", r.URL, r.Method)

		master, err := b.service.Master()
		if err != nil {
			rlog.WithError(err).Errorln("Error 5003: cannot build master document")
			writeError(w, http.StatusInternalServerError, messageInternalError)
			return
		}
		writeJSON(w, r, master)
	}
	router.HandleFunc("/api/master", handler).Methods(http.MethodOptions, http.MethodGet)
	router.HandleFunc("/api/master/", handler).Methods(http.MethodOptions, http.MethodGet)
}
