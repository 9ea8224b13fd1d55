// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// corsMaxAge is the preflight cache duration in seconds, 24 hours
const corsMaxAge = 86400

func (b *Backend) handleCORS(router *mux.Router) {
	origins := b.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Accept", "Content-Type", "Accept-Encoding", "If-None-Match"}),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
		handlers.MaxAge(corsMaxAge),
		handlers.OptionStatusCode(http.StatusNoContent),
	))
}
