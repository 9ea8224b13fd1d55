// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package dataobject

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/relabs-tech/dataobjects/core/pointers"
)

// TypeEnum is the descriptor type of every enumeration field
const TypeEnum = "enum"

// FormatPassword marks a field holding a secret
const FormatPassword = "password"

// password fields always get these bounds
const (
	passwordMinLength = 8
	passwordMaxLength = 1024
)

// typeSynonyms maps storage base names to descriptor types
var typeSynonyms = map[string]string{
	"varchar": "text",
}

// reservedLabels are the bookkeeping columns every data object carries. They are
// hidden from forms and get a fixed label.
var reservedLabels = map[string]string{
	"id":         "ID",
	"created_at": "Created At",
	"updated_at": "Updated At",
	"created_by": "Created By",
	"updated_by": "Updated By",
}

// EnumValue is one raw value of an enumeration together with its display label
type EnumValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// EnumValues is an ordered mapping from raw value to display label. It marshals
// to a JSON object, keeping the declaration order.
type EnumValues []EnumValue

// MarshalJSON is a custom JSON marshaller
func (e EnumValues) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		label, err := json.Marshal(v.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(label)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON is a custom JSON unmarshaller. Key order is preserved.
func (e *EnumValues) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("enum values must be a JSON object")
	}
	values := EnumValues{}
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := t.(string)
		if !ok {
			return fmt.Errorf("unexpected enum key %v", t)
		}
		var label string
		if err := dec.Decode(&label); err != nil {
			return fmt.Errorf("enum value '%s': %w", key, err)
		}
		values = append(values, EnumValue{Value: key, Label: label})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*e = values
	return nil
}

// FieldDefinition describes one column of a data object class.
//
// The storage related members are derived from the model (usually by
// reflection), the pointer members are optional presentation annotations.
// A nil annotation means "not annotated".
type FieldDefinition struct {
	Name        string   `json:"name"`
	StorageType string   `json:"storageType"`
	Length      *int     `json:"length,omitempty"`
	NativeEnum  bool     `json:"nativeEnum,omitempty"`
	EnumMembers []string `json:"enumMembers,omitempty"`
	Nullable    bool     `json:"nullable"`
	Description string   `json:"description,omitempty"`

	Label        *string        `json:"label,omitempty"`
	MinLength    *int           `json:"minLength,omitempty"`
	MaxLength    *int           `json:"maxLength,omitempty"`
	RegexPattern *string        `json:"regex,omitempty"`
	Format       *string        `json:"format,omitempty"`
	Default      any            `json:"default,omitempty"`
	EnumValues   EnumValues     `json:"enumValues,omitempty"`
	Display      map[string]any `json:"display,omitempty"`
}

// Required returns the negation of Nullable
func (f FieldDefinition) Required() bool {
	return !f.Nullable
}

// clone returns a deep copy of f
func (f FieldDefinition) clone() FieldDefinition {
	c := f
	c.Length = pointers.CloneInt(f.Length)
	c.Label = pointers.CloneString(f.Label)
	c.MinLength = pointers.CloneInt(f.MinLength)
	c.MaxLength = pointers.CloneInt(f.MaxLength)
	c.RegexPattern = pointers.CloneString(f.RegexPattern)
	c.Format = pointers.CloneString(f.Format)
	c.Default = cloneValue(f.Default)
	if f.EnumMembers != nil {
		c.EnumMembers = append([]string{}, f.EnumMembers...)
	}
	if f.EnumValues != nil {
		c.EnumValues = append(EnumValues{}, f.EnumValues...)
	}
	c.Display = cloneMap(f.Display)
	return c
}

// validate reports annotations the descriptor builder cannot make sense of
func (f FieldDefinition) validate() error {
	if f.Name == "" {
		return fmt.Errorf("field without name")
	}
	// patterns target client side validators and are passed on verbatim
	if f.RegexPattern != nil && strings.TrimSpace(*f.RegexPattern) == "" {
		return fmt.Errorf("field '%s': empty regex", f.Name)
	}
	for _, n := range []*int{f.Length, f.MinLength, f.MaxLength} {
		if n != nil && *n < 0 {
			return fmt.Errorf("field '%s': negative length %d", f.Name, *n)
		}
	}
	if f.MinLength != nil {
		max := f.MaxLength
		if max == nil {
			max = f.Length
		}
		if max != nil && *f.MinLength > *max {
			return fmt.Errorf("field '%s': minLength %d exceeds maxLength %d", f.Name, *f.MinLength, *max)
		}
	}
	if fieldType(f) == TypeEnum && len(f.EnumValues) == 0 && len(f.EnumMembers) == 0 {
		return fmt.Errorf("field '%s': enumeration without values", f.Name)
	}
	return nil
}

// Validation holds the validation rules of a field descriptor
type Validation struct {
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Regex     string `json:"regex,omitempty"`
}

func (v Validation) empty() bool {
	return v.MinLength == nil && v.MaxLength == nil && v.Regex == ""
}

// FieldDescriptor is the description of one field inside an object description
type FieldDescriptor struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Required    bool           `json:"required"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Format      string         `json:"format,omitempty"`
	Default     any            `json:"default,omitempty"`
	Validation  *Validation    `json:"validation,omitempty"`
	EnumValues  EnumValues     `json:"enumValues,omitempty"`
	Display     map[string]any `json:"display,omitempty"`
}

// DescribeField builds the descriptor of a single field
func DescribeField(field FieldDefinition) FieldDescriptor {
	d := FieldDescriptor{
		Name:        field.Name,
		Type:        fieldType(field),
		Required:    field.Required(),
		Label:       field.Name,
		Description: field.Description,
		Format:      pointers.SafeString(field.Format),
		Default:     cloneValue(field.Default),
		Validation:  fieldValidation(field),
		Display:     cloneMap(field.Display),
	}
	if field.Label != nil {
		d.Label = *field.Label
	}

	if d.Type == TypeEnum {
		if field.EnumValues != nil {
			d.EnumValues = append(EnumValues{}, field.EnumValues...)
		} else {
			d.EnumValues = EnumValues{}
			for _, member := range field.EnumMembers {
				d.EnumValues = append(d.EnumValues, EnumValue{Value: member, Label: member})
			}
		}
	}

	// the overlay wins over model specific annotations
	if label, ok := reservedLabels[field.Name]; ok {
		d.Label = label
		if d.Display == nil {
			d.Display = map[string]any{}
		}
		d.Display["visible"] = false
	}
	return d
}

// fieldType derives the descriptor type from the storage type: the base name
// without parameters, lower cased and mapped through the synonym table. Native
// enumerations are always "enum".
func fieldType(field FieldDefinition) string {
	if field.NativeEnum {
		return TypeEnum
	}
	base := field.StorageType
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}
	base = strings.ToLower(strings.TrimSpace(base))
	if synonym, ok := typeSynonyms[base]; ok {
		return synonym
	}
	return base
}

// fieldValidation returns the validation block or nil if there is nothing to validate.
//
// Password bounds and the length constraint of the type are exclusive. A password
// field with a type length keeps the password bounds only.
func fieldValidation(field FieldDefinition) *Validation {
	if pointers.SafeString(field.Format) == FormatPassword {
		return &Validation{
			MinLength: pointers.IntPtr(passwordMinLength),
			MaxLength: pointers.IntPtr(passwordMaxLength),
		}
	}

	v := Validation{}
	if field.MaxLength != nil {
		v.MaxLength = pointers.CloneInt(field.MaxLength)
	} else if field.Length != nil {
		v.MaxLength = pointers.CloneInt(field.Length)
	}
	if field.MinLength != nil {
		v.MinLength = pointers.CloneInt(field.MinLength)
	}
	if field.RegexPattern != nil {
		v.Regex = *field.RegexPattern
	}
	if v.empty() {
		return nil
	}
	return &v
}
