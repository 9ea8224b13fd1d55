// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package models

import "time"

// DataObject is the abstract base of all data objects. It carries the identifier
// and the bookkeeping columns. Embed it at the end of a model to get the
// bookkeeping columns after the model's own ones.
type DataObject struct {
	ID        string    `gorm:"size:50;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	CreatedBy string    `gorm:"size:50;not null;default:System"`
	UpdatedBy string    `gorm:"size:50;not null;default:System"`
}

// ObjectDescription implements orm.Describer
func (DataObject) ObjectDescription() string {
	return "Base class for all data objects in the system"
}
