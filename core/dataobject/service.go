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

// master document envelope
const (
	MasterName        = "Master Document"
	MasterDescription = "Master document listing all available data object types"
)

// Service generates object descriptions and the master document from a registry
type Service struct {
	Registry *Registry
	// Now returns the generation instant. Defaults to time.Now
	Now func() time.Time
}

// NewService returns a service backed by registry
func NewService(registry *Registry) *Service {
	return &Service{Registry: registry, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Description returns the complete description of the class registered under
// slug, with operations bound to their endpoints. It returns ErrInvalidSlug for
// malformed slugs and ErrNotFound if no concrete class is registered under slug.
func (s *Service) Description(slug string) (*ObjectDescription, error) {
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	class, ok := s.Registry.Resolve(slug)
	if !ok {
		return nil, ErrNotFound
	}
	d, err := Describe(class)
	if err != nil {
		return nil, err
	}
	Annotate(d.ID, d.Operations)
	d.Version = Version
	d.Metadata = newMetadata(s.now())
	return d, nil
}

// DataObjectSummary is the entry of one class in the master document
type DataObjectSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URI         string   `json:"uri"`
	Operations  []string `json:"operations"`
}

// MasterDocument is the index of all available data object types
type MasterDocument struct {
	Version     string              `json:"version"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	DataObjects []DataObjectSummary `json:"data_objects"`
	Metadata    *Metadata           `json:"metadata"`
}

// Master builds the master document. Abstract classes are left out. A class
// which cannot be described fails the whole document.
func (s *Service) Master() (*MasterDocument, error) {
	doc := &MasterDocument{
		Version:     Version,
		Name:        MasterName,
		Description: MasterDescription,
		DataObjects: []DataObjectSummary{},
	}
	for _, class := range s.Registry.Classes() {
		if class.Abstract {
			continue
		}
		d, err := Describe(class.Clone())
		if err != nil {
			return nil, fmt.Errorf("master document: %w", err)
		}
		description := d.Description
		if description == "" {
			description = d.Name + " data object type"
		}
		doc.DataObjects = append(doc.DataObjects, DataObjectSummary{
			ID:          d.ID,
			Name:        d.Name,
			Description: description,
			URI:         "/api/object/" + d.ID + "/",
			Operations:  d.Operations.Enabled(),
		})
	}
	doc.Metadata = newMetadata(s.now())
	return doc, nil
}
