// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package dataobject

import (
	"fmt"
	"time"
)

// Version is the version of the description document format
const Version = "1.0.0"

// SystemUser is the author of all generated documents
const SystemUser = "System"

// Metadata is the bookkeeping block of generated documents
type Metadata struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by"`
}

// newMetadata returns metadata for a document generated at t
func newMetadata(t time.Time) *Metadata {
	ts := t.UTC().Format(time.RFC3339Nano)
	return &Metadata{
		CreatedAt: ts,
		UpdatedAt: ts,
		CreatedBy: SystemUser,
		UpdatedBy: SystemUser,
	}
}

// ObjectDescription is the machine-readable description of one data object class
type ObjectDescription struct {
	Version          string            `json:"version"`
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Fields           []FieldDescriptor `json:"fields"`
	Operations       Operations        `json:"operations"`
	ListFields       []string          `json:"listFields"`
	SearchFields     []string          `json:"searchFields"`
	SearchTextFields []string          `json:"searchTextFields,omitempty"`
	Groups           []Group           `json:"groups,omitempty"`
	Metadata         *Metadata         `json:"metadata,omitempty"`
}

// Describe assembles the protocol independent description of a class: fields in
// declaration order, operations and field properties. It neither binds
// operations to endpoints nor stamps version and metadata.
func Describe(c *Class) (*ObjectDescription, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("class %s: %w", c.Name, err)
	}

	d := &ObjectDescription{
		ID:           c.Slug(),
		Name:         c.Name,
		Description:  c.Description,
		Fields:       make([]FieldDescriptor, 0, len(c.Fields)),
		ListFields:   []string{},
		SearchFields: []string{},
	}
	for _, f := range c.Fields {
		d.Fields = append(d.Fields, DescribeField(f))
	}

	p := c.Properties
	if p == nil || p.Operations == nil {
		d.Operations = DefaultOperations()
	} else {
		d.Operations = p.Operations.Clone()
	}
	if p == nil {
		return d, nil
	}
	if p.ListFields != nil {
		d.ListFields = cloneStrings(p.ListFields)
	}
	if p.SearchFields != nil {
		d.SearchFields = cloneStrings(p.SearchFields)
	}
	d.SearchTextFields = cloneStrings(p.SearchTextFields)
	if p.Groups != nil {
		d.Groups = p.clone().Groups
	}
	return d, nil
}
