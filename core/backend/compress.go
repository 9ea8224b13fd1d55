// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package backend

import (
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// handleCompression compresses responses for clients which accept gzip or deflate
func (b *Backend) handleCompression(router *mux.Router) {
	router.Use(handlers.CompressHandler)
}
