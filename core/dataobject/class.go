// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package dataobject

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/relabs-tech/dataobjects/core"
)

// Class is the schema definition of one data object type: an ordered list of
// fields plus optional field properties
type Class struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Abstract    bool              `json:"abstract,omitempty"`
	Fields      []FieldDefinition `json:"fields"`
	Properties  *FieldProperties  `json:"fieldProperties,omitempty"`
}

// Slug returns the public identifier of the class, its lower cased name
func (c *Class) Slug() string {
	return strings.ToLower(c.Name)
}

// Field returns the field definition with the given name
func (c *Class) Field(name string) (FieldDefinition, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Clone returns a deep copy of the class. Descriptions are always built from a
// copy, the registered class is never touched.
func (c *Class) Clone() *Class {
	clone := &Class{
		Name:        c.Name,
		Description: c.Description,
		Abstract:    c.Abstract,
		Fields:      make([]FieldDefinition, len(c.Fields)),
	}
	for i, f := range c.Fields {
		clone.Fields[i] = f.clone()
	}
	if c.Properties != nil {
		clone.Properties = c.Properties.clone()
	}
	return clone
}

// Validate checks the class for inconsistent declarations: malformed field
// annotations and references to unknown fields or operations
func (c *Class) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("class without name")
	}
	known := map[string]bool{}
	for _, f := range c.Fields {
		if err := f.validate(); err != nil {
			return err
		}
		if known[f.Name] {
			return fmt.Errorf("field '%s' declared twice", f.Name)
		}
		known[f.Name] = true
	}
	p := c.Properties
	if p == nil {
		return nil
	}
	check := func(kind string, names []string) error {
		for _, name := range names {
			if _, ok := c.Field(name); !ok {
				return fmt.Errorf("%s references unknown field '%s'", kind, name)
			}
		}
		return nil
	}
	if err := check("listFields", p.ListFields); err != nil {
		return err
	}
	if err := check("searchFields", p.SearchFields); err != nil {
		return err
	}
	if err := check("searchTextFields", p.SearchTextFields); err != nil {
		return err
	}
	for _, g := range p.Groups {
		if err := check("group "+g.Name, g.Fields); err != nil {
			return err
		}
	}
	for name := range p.Operations {
		if !name.Valid() {
			return fmt.Errorf("unknown operation '%s'", name)
		}
	}
	return nil
}

// Group is a named set of fields for form layout
type Group struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// FieldProperties is the presentation and behaviour metadata of a class that
// cannot be derived from column types
type FieldProperties struct {
	Groups           []Group    `json:"groups,omitempty"`
	ListFields       []string   `json:"listFields,omitempty"`
	SearchFields     []string   `json:"searchFields,omitempty"`
	SearchTextFields []string   `json:"searchTextFields,omitempty"`
	Operations       Operations `json:"operations,omitempty"`
}

func (p *FieldProperties) clone() *FieldProperties {
	clone := &FieldProperties{
		ListFields:       cloneStrings(p.ListFields),
		SearchFields:     cloneStrings(p.SearchFields),
		SearchTextFields: cloneStrings(p.SearchTextFields),
		Operations:       p.Operations.Clone(),
	}
	if p.Groups != nil {
		clone.Groups = make([]Group, len(p.Groups))
		for i, g := range p.Groups {
			clone.Groups[i] = Group{Name: g.Name, Fields: cloneStrings(g.Fields)}
		}
	}
	return clone
}

// Operation is the toggle of one operation of a class. Endpoint and Method are
// only set once the operation got bound to a REST convention.
type Operation struct {
	Enabled  bool
	Endpoint string
	Method   string
	// Extra holds additional attributes, for example pagination settings
	Extra map[string]any
}

// MarshalJSON is a custom JSON marshaller
func (o Operation) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(o.Extra)+3)
	for k, v := range o.Extra {
		m[k] = v
	}
	m["enabled"] = o.Enabled
	if o.Endpoint != "" {
		m["endpoint"] = o.Endpoint
	}
	if o.Method != "" {
		m["method"] = o.Method
	}
	return json.Marshal(m)
}

// UnmarshalJSON is a custom JSON unmarshaller
func (o *Operation) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*o = Operation{}
	for k, v := range m {
		switch k {
		case "enabled":
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("enabled must be a boolean, got %v", v)
			}
			o.Enabled = b
		case "endpoint", "method":
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("%s must be a string, got %v", k, v)
			}
			if k == "endpoint" {
				o.Endpoint = str
			} else {
				o.Method = str
			}
		default:
			if o.Extra == nil {
				o.Extra = map[string]any{}
			}
			o.Extra[k] = v
		}
	}
	return nil
}

// Has returns true if the extra attribute key is present
func (o *Operation) Has(key string) bool {
	_, ok := o.Extra[key]
	return ok
}

// Set sets the extra attribute key
func (o *Operation) Set(key string, value any) {
	if o.Extra == nil {
		o.Extra = map[string]any{}
	}
	o.Extra[key] = value
}

// Operations maps operation names to their toggles
type Operations map[core.Operation]*Operation

// DefaultOperations returns all operations enabled without extra attributes
func DefaultOperations() Operations {
	ops := Operations{}
	for _, name := range core.Operations {
		ops[name] = &Operation{Enabled: true}
	}
	return ops
}

// Clone returns a deep copy of the operations
func (ops Operations) Clone() Operations {
	if ops == nil {
		return nil
	}
	clone := make(Operations, len(ops))
	for name, op := range ops {
		if op == nil {
			clone[name] = nil
			continue
		}
		clone[name] = &Operation{
			Enabled:  op.Enabled,
			Endpoint: op.Endpoint,
			Method:   op.Method,
			Extra:    cloneMap(op.Extra),
		}
	}
	return clone
}

// Enabled returns the names of all enabled operations in canonical order
func (ops Operations) Enabled() []string {
	enabled := []string{}
	for _, name := range ops.names() {
		if op := ops[name]; op != nil && op.Enabled {
			enabled = append(enabled, string(name))
		}
	}
	return enabled
}

// names returns the known operations in canonical order, followed by all others sorted
func (ops Operations) names() []core.Operation {
	names := []core.Operation{}
	for _, name := range core.Operations {
		if _, ok := ops[name]; ok {
			names = append(names, name)
		}
	}
	var others []string
	for name := range ops {
		if !name.Valid() {
			others = append(others, string(name))
		}
	}
	sort.Strings(others)
	for _, name := range others {
		names = append(names, core.Operation(name))
	}
	return names
}

// MarshalJSON is a custom JSON marshaller which keeps the canonical operation order
func (ops Operations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range ops.names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(name))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(ops[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON is a custom JSON unmarshaller. It does not restrict the
// operation names, Class validation does.
func (ops *Operations) UnmarshalJSON(data []byte) error {
	var m map[string]*Operation
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*ops = make(Operations, len(m))
	for k, v := range m {
		(*ops)[core.Operation(k)] = v
	}
	return nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	clone := make(map[string]any, len(m))
	for k, v := range m {
		clone[k] = cloneValue(v)
	}
	return clone
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		clone := make([]any, len(t))
		for i := range t {
			clone[i] = cloneValue(t[i])
		}
		return clone
	default:
		return v
	}
}
