// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

// Package models contains the built-in data object models
package models

import (
	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/orm"
)

// Classes returns the classes of all built-in models. This is the single list
// of model types known to the service, new models must be added here.
func Classes() ([]*dataobject.Class, error) {
	base, err := orm.NewClass(&DataObject{}, orm.Abstract())
	if err != nil {
		return nil, err
	}
	user, err := orm.NewClass(&User{})
	if err != nil {
		return nil, err
	}
	return []*dataobject.Class{base, user}, nil
}

// Register registers all built-in models with registry
func Register(registry *dataobject.Registry) error {
	classes, err := Classes()
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
