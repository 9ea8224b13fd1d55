// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

/*
Package orm derives data object classes from gorm models.

Column names, storage types, nullability, defaults and comments are taken from
the model's gorm schema. Presentation annotations which a column cannot carry
are declared in a separate "describe" struct tag, using the gorm tag syntax:

	type User struct {
		ID        int    `gorm:"primaryKey"`
		FirstName string `gorm:"size:50;not null" describe:"label:First Name;minLength:2;regex:^[a-zA-Z]+$"`
		Password  string `gorm:"size:128" describe:"format:password"`
		Status    string `gorm:"type:enum('active','inactive');default:active" describe:"enum:active=Active,inactive=Inactive"`
	}

Supported describe keys are label, description, minLength, maxLength, regex,
format, enum, display and hidden. enum labels the members of an enum(...)
column with a comma separated list of value=label pairs, a value without label
gets a label derived from the value. display is a comma separated list of
key=value hints, hidden is a shortcut for display:visible=false.

Use "\;" to put a semicolon into a value.
*/
package orm

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"gorm.io/gorm/schema"

	"github.com/relabs-tech/dataobjects/core"
	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/pointers"
)

// TagName is the struct tag holding presentation annotations
const TagName = "describe"

// Describer can be implemented by models to provide a class description
type Describer interface {
	ObjectDescription() string
}

// PropertiesProvider can be implemented by models to provide field properties
type PropertiesProvider interface {
	FieldProperties() *dataobject.FieldProperties
}

type options struct {
	name        string
	description *string
	abstract    bool
	properties  *dataobject.FieldProperties
}

// Option configures NewClass
type Option func(*options)

// Abstract marks the class as abstract base, it is registered but never described
func Abstract() Option {
	return func(o *options) { o.abstract = true }
}

// WithName overrides the class name, which defaults to the model's type name
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithDescription sets the class description
func WithDescription(description string) Option {
	return func(o *options) { o.description = &description }
}

// WithProperties sets the field properties of the class
func WithProperties(properties *dataobject.FieldProperties) Option {
	return func(o *options) { o.properties = properties }
}

// NewClass creates a data object class from model, which must be a gorm model
// struct or a pointer to one. Fields are returned in declaration order, fields
// of embedded structs at the position of the embedding. A field shadowed by a
// field with the same column name is left out.
func NewClass(model any, opts ...Option) (*dataobject.Class, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("cannot parse model %T: %w", model, err)
	}

	c := &dataobject.Class{
		Name:     s.Name,
		Abstract: o.abstract,
		Fields:   []dataobject.FieldDefinition{},
	}
	if o.name != "" {
		c.Name = o.name
	}
	if d, ok := model.(Describer); ok {
		c.Description = d.ObjectDescription()
	}
	if o.description != nil {
		c.Description = *o.description
	}
	if p, ok := model.(PropertiesProvider); ok {
		c.Properties = p.FieldProperties()
	}
	if o.properties != nil {
		c.Properties = o.properties
	}

	for _, f := range s.Fields {
		if f.DBName == "" || f.DataType == "" || s.FieldsByDBName[f.DBName] != f {
			continue
		}
		fd, err := fieldDefinition(f)
		if err != nil {
			return nil, fmt.Errorf("model %s: field %s: %w", s.Name, f.Name, err)
		}
		c.Fields = append(c.Fields, fd)
	}
	return c, nil
}

// MustNewClass is like NewClass but panics on error
func MustNewClass(model any, opts ...Option) *dataobject.Class {
	c, err := NewClass(model, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// fieldDefinition converts a gorm field
func fieldDefinition(f *schema.Field) (dataobject.FieldDefinition, error) {
	fd := dataobject.FieldDefinition{
		Name:        f.DBName,
		StorageType: storageType(f),
		Nullable:    !(f.NotNull || f.PrimaryKey),
		Description: f.Comment,
	}

	if members, ok := enumMembers(fd.StorageType); ok {
		fd.NativeEnum = true
		fd.EnumMembers = members
	} else if _, ok := f.TagSettings["SIZE"]; ok && f.DataType == schema.String && f.Size > 0 {
		fd.Length = pointers.IntPtr(f.Size)
	} else {
		fd.Length = typeLength(fd.StorageType)
	}

	if f.HasDefaultValue {
		switch {
		case f.DefaultValueInterface != nil:
			fd.Default = f.DefaultValueInterface
		case f.DefaultValue != "" && !strings.EqualFold(f.DefaultValue, "null"):
			fd.Default = f.DefaultValue
		}
	}

	if err := annotate(&fd, f.Tag.Get(TagName)); err != nil {
		return fd, err
	}
	return fd, nil
}

// storageType returns the explicit gorm type or the column type gorm would
// create for the Go type
func storageType(f *schema.Field) string {
	if t, ok := f.TagSettings["TYPE"]; ok {
		return t
	}
	switch f.DataType {
	case schema.String:
		if f.Size > 0 {
			return fmt.Sprintf("VARCHAR(%d)", f.Size)
		}
		return "TEXT"
	case schema.Int, schema.Uint:
		return "INTEGER"
	case schema.Float:
		return "FLOAT"
	case schema.Bool:
		return "BOOLEAN"
	case schema.Time:
		return "DATETIME"
	case schema.Bytes:
		return "BLOB"
	default:
		return strings.ToUpper(string(f.DataType))
	}
}

// enumMembers returns the members of an enum('a','b') storage type
func enumMembers(storageType string) ([]string, bool) {
	t := strings.TrimSpace(storageType)
	if len(t) < 6 || !strings.EqualFold(t[:5], "enum(") || !strings.HasSuffix(t, ")") {
		return nil, false
	}
	members := []string{}
	for _, m := range strings.Split(t[5:len(t)-1], ",") {
		m = strings.TrimSpace(m)
		m = strings.Trim(m, `'"`)
		if m != "" {
			members = append(members, m)
		}
	}
	return members, true
}

// typeLength returns n for storage types like varchar(n)
func typeLength(storageType string) *int {
	open := strings.IndexByte(storageType, '(')
	end := strings.LastIndexByte(storageType, ')')
	if open < 0 || end < open {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(storageType[open+1 : end]))
	if err != nil {
		return nil
	}
	return &n
}

// annotate applies the describe tag to fd
func annotate(fd *dataobject.FieldDefinition, tag string) error {
	if tag == "" {
		return nil
	}
	hidden := false
	for key, value := range schema.ParseTagSetting(tag, ";") {
		value = strings.TrimSpace(value)
		switch key {
		case "LABEL":
			fd.Label = pointers.StringPtr(value)
		case "DESCRIPTION":
			fd.Description = value
		case "MINLENGTH", "MAXLENGTH":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid %s '%s'", strings.ToLower(key), value)
			}
			if key == "MINLENGTH" {
				fd.MinLength = &n
			} else {
				fd.MaxLength = &n
			}
		case "REGEX":
			fd.RegexPattern = pointers.StringPtr(value)
		case "FORMAT":
			fd.Format = pointers.StringPtr(value)
		case "ENUM":
			if !fd.NativeEnum {
				return fmt.Errorf("%s enum labels need an enum(...) column type, got %s", TagName, fd.StorageType)
			}
			fd.EnumValues = enumValues(value)
		case "DISPLAY":
			if fd.Display == nil {
				fd.Display = map[string]any{}
			}
			for k, v := range pairs(value) {
				fd.Display[k] = displayValue(v)
			}
		case "HIDDEN":
			hidden = true
		default:
			return fmt.Errorf("unknown %s key '%s'", TagName, strings.ToLower(key))
		}
	}
	if hidden {
		if fd.Display == nil {
			fd.Display = map[string]any{}
		}
		fd.Display["visible"] = false
	}
	return nil
}

// enumValues parses "a=A,b=B,c" keeping the order
func enumValues(s string) dataobject.EnumValues {
	values := dataobject.EnumValues{}
	for _, item := range strings.Split(s, ",") {
		value, label, found := strings.Cut(item, "=")
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if found {
			label = strings.TrimSpace(label)
		} else {
			label = core.PropertyNameToLabel(value)
		}
		values = append(values, dataobject.EnumValue{Value: value, Label: label})
	}
	return values
}

func pairs(s string) map[string]string {
	m := map[string]string{}
	for _, item := range strings.Split(s, ",") {
		k, v, _ := strings.Cut(item, "=")
		if k = strings.TrimSpace(k); k != "" {
			m[k] = strings.TrimSpace(v)
		}
	}
	return m
}

// displayValue converts integers and booleans, everything else stays a string
func displayValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
