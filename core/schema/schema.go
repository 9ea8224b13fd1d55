// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

// Package schema validates JSON documents against JSON schemas
package schema

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError lists all violations of a document
type ValidationError struct {
	SchemaID   string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("the document is not valid against %s:\n- %s", e.SchemaID, strings.Join(e.Violations, "\n- "))
}

// Validator is a utility to validate JSON documents against a set of schemas
type Validator struct {
	schemaValidators map[string]*gojsonschema.Schema
}

// NewValidatorFromFS creates a new Validator using schemas from fsys. Json files
// in dir will be used as toplevel schemas, while json files in dir/refs will be
// used as references. The refs directory is optional.
func NewValidatorFromFS(fsys fs.FS, dir string) (*Validator, error) {
	if _, err := fs.Stat(fsys, dir); err != nil {
		return nil, fmt.Errorf("cannot read schema directory: %w", err)
	}
	schemas, err := readJSONFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	refs, err := readJSONFiles(fsys, path.Join(dir, "refs"))
	if err != nil {
		return nil, err
	}
	return NewValidator(schemas, refs)
}

// readJSONFiles returns the content of all *.json files in dir, sorted by
// name. A missing dir yields no files.
func readJSONFiles(fsys fs.FS, dir string) ([]string, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	contents := make([]string, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("cannot read schema %s: %w", name, err)
		}
		contents = append(contents, string(data))
	}
	return contents, nil
}

// NewValidator creates a new Validator using schemas for the top level JSON schemas and refs
// for refs that may be referenced in the top level schemas. Top level schemas cannot reference each
// others. If a reference is mentioned, it can only be in the list of refs
func NewValidator(schemas []string, refs []string) (*Validator, error) {
	v := &Validator{schemaValidators: map[string]*gojsonschema.Schema{}}
	for _, str := range schemas {
		var header struct {
			ID string `json:"$id"`
		}
		if err := json.Unmarshal([]byte(str), &header); err != nil {
			return nil, fmt.Errorf("invalid schema: %w", err)
		}
		if header.ID == "" {
			return nil, fmt.Errorf("schema without $id: '%.60s'", str)
		}
		loader := gojsonschema.NewSchemaLoader()
		for _, ref := range refs {
			if err := loader.AddSchemas(gojsonschema.NewStringLoader(ref)); err != nil {
				return nil, fmt.Errorf("cannot add ref for %s: %w", header.ID, err)
			}
		}
		compiled, err := loader.Compile(gojsonschema.NewStringLoader(str))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %w", header.ID, err)
		}
		v.schemaValidators[header.ID] = compiled
	}
	return v, nil
}

// HasSchema returns true if schemaID is known
func (v *Validator) HasSchema(schemaID string) bool {
	return v.schemaValidators[schemaID] != nil
}

// ValidateStruct validates the given value against schemaID. If no error is returned,
// then the value is valid
func (v *Validator) ValidateStruct(value any, schemaID string) error {
	return v.validate(gojsonschema.NewGoLoader(value), schemaID)
}

// ValidateBytes validates the given json against schemaID. If no error is returned, then the
// passed json is valid. Violations are reported as *ValidationError
func (v *Validator) ValidateBytes(data []byte, schemaID string) error {
	return v.validate(gojsonschema.NewBytesLoader(data), schemaID)
}

// ValidateString is ValidateBytes for strings
func (v *Validator) ValidateString(document, schemaID string) error {
	return v.validate(gojsonschema.NewStringLoader(document), schemaID)
}

func (v *Validator) validate(loader gojsonschema.JSONLoader, schemaID string) error {
	compiled, found := v.schemaValidators[schemaID]
	if !found {
		return fmt.Errorf("unknown schema %s", schemaID)
	}

	result, err := compiled.Validate(loader)
	if err != nil {
		return fmt.Errorf("cannot validate with schema %s: %w", schemaID, err)
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{SchemaID: schemaID}
	for _, e := range result.Errors() {
		verr.Violations = append(verr.Violations, e.String())
	}
	return verr
}
