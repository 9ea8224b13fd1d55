// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

/*
Package backend implements the REST API of the data object descriptions

Routes:

	GET /api/object/{slug}   description of one data object type
	GET /api/master          index of all data object types
	GET /version             build version
	GET /health              service and database health
	GET /                    greeting

Both API routes also accept a trailing slash. Slugs are case-insensitive and
consist of letters, digits, '_' and '-'.

Errors are reported as JSON:

	{"error": "Object type not found"}

with status 404 for unknown types, 400 for malformed slugs and 500 for
everything else. Details of internal errors are logged, never returned.

Usage:

	registry := dataobject.NewRegistry()
	if err := models.Register(registry); err != nil {
		panic(err)
	}
	router := mux.NewRouter()
	backend.New(&backend.Builder{
		Registry: registry,
		Router:   router,
	})
	http.ListenAndServe(":1082", router)
*/
package backend
