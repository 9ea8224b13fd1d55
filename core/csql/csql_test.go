// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package csql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataSourceName(t *testing.T) {
	dsn := "host=localhost port=5432 user=postgres dbname=postgres sslmode=disable"
	assert.Equal(t, dsn, DataSourceName(dsn, ""))
	assert.Equal(t, dsn+" password=docker", DataSourceName(dsn+" ", "docker"))
}

func TestHealthDisabled(t *testing.T) {
	var db *DB
	assert.Equal(t, "disabled", db.Health(context.Background()))
	assert.Equal(t, "disabled", (&DB{}).Health(context.Background()))
}

func TestOpenUnreachable(t *testing.T) {
	_, err := OpenWithSchema(context.Background(),
		"host=127.0.0.1 port=1 user=postgres dbname=postgres sslmode=disable connect_timeout=1", "")
	assert.Error(t, err)
}
