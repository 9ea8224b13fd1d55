// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

/*
Package manifest loads data object classes from JSON manifests.

A manifest declares one class with the same members a reflected model has:

	{
	  "name": "Product",
	  "fields": [
	    { "name": "id", "storageType": "INTEGER" },
	    { "name": "title", "storageType": "VARCHAR(80)", "length": 80, "label": "Title" }
	  ],
	  "fieldProperties": { "listFields": ["title"] }
	}

Manifests are validated against the embedded class schema before they are
decoded.
*/
package manifest

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/logger"
	"github.com/relabs-tech/dataobjects/core/schema"
)

//go:embed schemas
var schemaFS embed.FS

// ClassSchemaID is the $id of the class manifest schema
const ClassSchemaID = "https://schemas.relabs.tech/dataobjects/class.json"

// Loader validates and decodes manifests
type Loader struct {
	validator *schema.Validator
}

// NewLoader returns a loader using the embedded schemas
func NewLoader() (*Loader, error) {
	v, err := schema.NewValidatorFromFS(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("cannot load manifest schemas: %w", err)
	}
	return &Loader{validator: v}, nil
}

// Parse validates data and decodes it into a class
func (l *Loader) Parse(data []byte) (*dataobject.Class, error) {
	if err := l.validator.ValidateBytes(data, ClassSchemaID); err != nil {
		return nil, err
	}
	c := &dataobject.Class{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("cannot decode manifest: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("class %s: %w", c.Name, err)
	}
	return c, nil
}

// LoadDir loads all *.json manifests in dir, in lexical file name order
func (l *Loader) LoadDir(fsys fs.FS, dir string) ([]*dataobject.Class, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest dir %s: %w", dir, err)
	}
	var classes []*dataobject.Class
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := e.Name()
		if dir != "." {
			name = dir + "/" + name
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("cannot read manifest %s: %w", name, err)
		}
		c, err := l.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", name, err)
		}
		logger.Default().Debugf("loaded manifest %s with class %s", name, c.Name)
		classes = append(classes, c)
	}
	return classes, nil
}

// Register loads all manifests from the directory path and registers their
// classes with registry
func Register(registry *dataobject.Registry, path string) error {
	l, err := NewLoader()
	if err != nil {
		return err
	}
	classes, err := l.LoadDir(os.DirFS(path), ".")
	if err != nil {
		return err
	}
	for _, c := range classes {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
