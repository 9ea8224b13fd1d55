// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package models

import (
	"github.com/relabs-tech/dataobjects/core/dataobject"
)

// User is a user account
type User struct {
	// auto incremented, overrides the string identifier of DataObject
	ID int `gorm:"primaryKey;autoIncrement"`

	FirstName string `gorm:"size:50;not null" describe:"label:First Name;minLength:2;regex:^[a-zA-Z]+$"`
	LastName  string `gorm:"size:50;not null" describe:"label:Last Name"`

	Email    string `gorm:"size:254;not null;unique" describe:"label:Email;format:email"`
	Password string `gorm:"size:128;not null" describe:"label:Password;format:password"` // hashed
	Status   string `gorm:"type:enum('active','inactive','pending');not null;default:pending" describe:"label:Status;enum:active=Active,inactive=Inactive,pending=Pending"`

	DataObject
}

// ObjectDescription implements orm.Describer
func (User) ObjectDescription() string {
	return "A user account of the system"
}

// FieldProperties implements orm.PropertiesProvider
func (User) FieldProperties() *dataobject.FieldProperties {
	return &dataobject.FieldProperties{
		Groups: []dataobject.Group{
			{Name: "Personal Information", Fields: []string{"first_name", "last_name"}},
			{Name: "Account Information", Fields: []string{"email", "password", "status"}},
		},
		ListFields:       []string{"first_name", "last_name", "email", "status"},
		SearchFields:     []string{"first_name", "last_name", "email", "status"},
		SearchTextFields: []string{"first_name", "last_name", "email"},
	}
}
