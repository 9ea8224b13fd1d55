// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package core

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Operation represents a data object operation, one of Create, Read, Update, Delete, List
type Operation string

// all supported data object operations
const (
	OperationCreate Operation = "create"
	OperationRead   Operation = "read"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
	OperationList   Operation = "list"
)

// Operations lists all supported operations in their canonical order
var Operations = []Operation{
	OperationCreate,
	OperationRead,
	OperationUpdate,
	OperationDelete,
	OperationList,
}

// Valid returns true if o is one of the supported operations
func (o Operation) Valid() bool {
	switch o {
	case OperationCreate, OperationRead, OperationUpdate, OperationDelete, OperationList:
		return true
	default:
		return false
	}
}

// UnmarshalJSON is a custom JSON unmarshaller
func (o *Operation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = Operation(s)
	if !o.Valid() {
		return fmt.Errorf("%s is not valid Operation", s)
	}
	return nil
}

// PropertyNameToLabel converts JSON property names to a human readable
// label. Example: "created_at" becomes "Created At".
func PropertyNameToLabel(property string) string {
	parts := strings.Split(property, "_")
	for i := 0; i < len(parts); i++ {
		s := parts[i]
		if len(s) == 0 {
			continue
		}
		s = strings.ToLower(s)
		runes := []rune(s)
		r := runes[0]
		if 'a' <= r && r <= 'z' {
			r += 'A' - 'a'
			runes[0] = r
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
