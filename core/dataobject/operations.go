// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package dataobject

import (
	"net/http"

	"github.com/relabs-tech/dataobjects/core"
)

// pagination defaults of the list operation
const (
	paginationKey          = "pagination"
	defaultPageSizeKey     = "default_page_size"
	defaultPageSize        = 20
	defaultPaginationValue = true
)

type endpoint struct {
	item   bool
	method string
}

// endpoints is the REST convention operations get bound to
var endpoints = map[core.Operation]endpoint{
	core.OperationCreate: {item: false, method: http.MethodPost},
	core.OperationRead:   {item: true, method: http.MethodGet},
	core.OperationUpdate: {item: true, method: http.MethodPut},
	core.OperationDelete: {item: true, method: http.MethodDelete},
	core.OperationList:   {item: false, method: http.MethodGet},
}

// Annotate binds every enabled operation to its REST endpoint and method. The
// list operation additionally gets pagination defaults. Operations which are
// absent or disabled stay untouched.
//
// The passed operations are modified in place and returned.
func Annotate(slug string, operations Operations) Operations {
	for _, name := range core.Operations {
		op, ok := operations[name]
		if !ok || op == nil || !op.Enabled {
			continue
		}
		e := endpoints[name]
		op.Endpoint = "/api/" + slug
		if e.item {
			op.Endpoint += "/{id}"
		}
		op.Method = e.method

		if name != core.OperationList {
			continue
		}
		if !op.Has(paginationKey) {
			op.Set(paginationKey, defaultPaginationValue)
		}
		if !op.Has(defaultPageSizeKey) {
			op.Set(defaultPageSizeKey, defaultPageSize)
		}
	}
	return operations
}
