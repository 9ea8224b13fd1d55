// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package orm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/pointers"
)

type Bookkeeping struct {
	ID        string    `gorm:"size:36;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	CreatedBy string    `gorm:"size:50;default:System"`
}

type Gadget struct {
	ID       int     `gorm:"primaryKey"`
	Name     string  `gorm:"size:40;not null;comment:the name" describe:"label:Gadget Name;minLength:3;regex:^[a-z]+$"`
	Code     string  `gorm:"type:varchar(12)" describe:"maxLength:8"`
	Notes    string  `describe:"display:rows=4,help_text=Free text,visible=true"`
	Price    float64 `gorm:"default:9.5"`
	Active   bool    `gorm:"default:true"`
	Color    string  `gorm:"type:ENUM('red','green');default:'red'"`
	Size     string  `gorm:"type:enum('small','large')" describe:"enum:small,large=Large"`
	Secret   string  `gorm:"size:64" describe:"format:password;hidden"`
	Ignored  string  `gorm:"-"`
	Payload  []byte

	Bookkeeping
}

func (Gadget) ObjectDescription() string {
	return "A gadget"
}

func field(t *testing.T, c *dataobject.Class, name string) dataobject.FieldDefinition {
	t.Helper()
	f, ok := c.Field(name)
	if !ok {
		t.Fatalf("field %s missing", name)
	}
	return f
}

func TestNewClass(t *testing.T) {
	c, err := NewClass(&Gadget{})
	require.NoError(t, err)

	assert.Equal(t, "Gadget", c.Name)
	assert.Equal(t, "A gadget", c.Description)
	assert.False(t, c.Abstract)
	assert.Nil(t, c.Properties)

	names := []string{}
	for _, f := range c.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"id", "name", "code", "notes", "price", "active", "color", "size", "secret", "payload",
		"created_at", "created_by",
	}, names)

	id := field(t, c, "id")
	assert.Equal(t, "INTEGER", id.StorageType)
	assert.False(t, id.Nullable)
	assert.Nil(t, id.Default)

	name := field(t, c, "name")
	assert.Equal(t, "VARCHAR(40)", name.StorageType)
	assert.Equal(t, pointers.IntPtr(40), name.Length)
	assert.False(t, name.Nullable)
	assert.Equal(t, "the name", name.Description)
	assert.Equal(t, pointers.StringPtr("Gadget Name"), name.Label)
	assert.Equal(t, pointers.IntPtr(3), name.MinLength)
	assert.Equal(t, pointers.StringPtr("^[a-z]+$"), name.RegexPattern)

	code := field(t, c, "code")
	assert.Equal(t, "varchar(12)", code.StorageType)
	assert.Equal(t, pointers.IntPtr(12), code.Length)
	assert.Equal(t, pointers.IntPtr(8), code.MaxLength)
	assert.True(t, code.Nullable)

	notes := field(t, c, "notes")
	assert.Equal(t, "TEXT", notes.StorageType)
	assert.Nil(t, notes.Length)
	assert.Equal(t, map[string]any{"rows": 4, "help_text": "Free text", "visible": true}, notes.Display)

	price := field(t, c, "price")
	assert.Equal(t, "FLOAT", price.StorageType)
	assert.Equal(t, 9.5, price.Default)

	active := field(t, c, "active")
	assert.Equal(t, "BOOLEAN", active.StorageType)
	assert.Equal(t, true, active.Default)

	color := field(t, c, "color")
	assert.True(t, color.NativeEnum)
	assert.Equal(t, []string{"red", "green"}, color.EnumMembers)
	assert.Nil(t, color.Length)
	assert.Equal(t, "red", color.Default)

	size := field(t, c, "size")
	assert.True(t, size.NativeEnum)
	assert.Equal(t, []string{"small", "large"}, size.EnumMembers)
	assert.Equal(t, dataobject.EnumValues{
		{Value: "small", Label: "Small"},
		{Value: "large", Label: "Large"},
	}, size.EnumValues)

	secret := field(t, c, "secret")
	assert.Equal(t, pointers.StringPtr("password"), secret.Format)
	assert.Equal(t, map[string]any{"visible": false}, secret.Display)

	payload := field(t, c, "payload")
	assert.Equal(t, "BLOB", payload.StorageType)

	createdAt := field(t, c, "created_at")
	assert.Equal(t, "DATETIME", createdAt.StorageType)
	assert.False(t, createdAt.Nullable)

	createdBy := field(t, c, "created_by")
	assert.Equal(t, "System", createdBy.Default)
	assert.True(t, createdBy.Nullable)
}

func TestNewClass_Describe(t *testing.T) {
	c := MustNewClass(&Gadget{})
	d, err := dataobject.Describe(c)
	require.NoError(t, err)

	for _, f := range d.Fields {
		switch f.Name {
		case "color":
			assert.Equal(t, "enum", f.Type)
			assert.Equal(t, dataobject.EnumValues{{Value: "red", Label: "red"}, {Value: "green", Label: "green"}}, f.EnumValues)
		case "size":
			assert.Equal(t, "enum", f.Type)
			assert.Equal(t, dataobject.EnumValues{{Value: "small", Label: "Small"}, {Value: "large", Label: "Large"}}, f.EnumValues)
		case "code":
			assert.Equal(t, "text", f.Type)
			assert.Equal(t, pointers.IntPtr(8), f.Validation.MaxLength)
		case "secret":
			assert.Equal(t, &dataobject.Validation{MinLength: pointers.IntPtr(8), MaxLength: pointers.IntPtr(1024)}, f.Validation)
		case "id":
			assert.Equal(t, "ID", f.Label)
		}
	}
}

func TestNewClass_Options(t *testing.T) {
	props := &dataobject.FieldProperties{ListFields: []string{"name"}}
	c, err := NewClass(&Gadget{},
		WithName("Widget"),
		WithDescription("A widget"),
		WithProperties(props),
		Abstract(),
	)
	require.NoError(t, err)
	assert.Equal(t, "Widget", c.Name)
	assert.Equal(t, "widget", c.Slug())
	assert.Equal(t, "A widget", c.Description)
	assert.Same(t, props, c.Properties)
	assert.True(t, c.Abstract)
}

type badLength struct {
	Name string `describe:"minLength:two"`
}

type enumOnText struct {
	Size string `gorm:"size:10" describe:"enum:small,large"`
}

type badKey struct {
	Name string `describe:"colour:red"`
}

func TestNewClass_Errors(t *testing.T) {
	_, err := NewClass(&badLength{})
	assert.Error(t, err)

	_, err = NewClass(&badKey{})
	assert.Error(t, err)

	_, err = NewClass(&enumOnText{})
	assert.Error(t, err, "enum labels on a plain column")

	_, err = NewClass(42)
	assert.Error(t, err)

	assert.Panics(t, func() { MustNewClass(&badKey{}) })
}

func TestEnumMembers(t *testing.T) {
	members, ok := enumMembers(`enum('a', "b",'c')`)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, members)

	_, ok = enumMembers("varchar(10)")
	assert.False(t, ok)
	_, ok = enumMembers("enum")
	assert.False(t, ok)
}

func TestTypeLength(t *testing.T) {
	assert.Equal(t, pointers.IntPtr(50), typeLength("VARCHAR(50)"))
	assert.Equal(t, pointers.IntPtr(7), typeLength("char( 7 )"))
	assert.Nil(t, typeLength("numeric(10,2)"))
	assert.Nil(t, typeLength("INTEGER"))
}
