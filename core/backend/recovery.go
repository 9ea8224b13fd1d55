// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"

	"github.com/relabs-tech/dataobjects/core/logger"
)

// handleRecovery calls every handler in a panic/recover envelope. A panic is
// logged with its stack and answered with the generic internal error.
func (b *Backend) handleRecovery(router *mux.Router) {
	recovery := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.FromContext(r.Context()).
						WithField("stack", string(debug.Stack())).
						Errorf("Error 5000: recovered from panic: %v", rec)
					writeError(w, http.StatusInternalServerError, messageInternalError)
				}
			}()
			h.ServeHTTP(w, r)
		})
	}
	router.Use(recovery)
}
