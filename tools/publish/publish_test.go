// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/kss"
)

func TestPublish(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	driver, err := kss.NewLocalFilesystem(kss.LocalConfiguration{BasePath: dir})
	require.NoError(t, err)

	// a leftover of a removed object type
	require.NoError(t, driver.UploadData(ctx, "objects/gone.json", []byte(`{}`), contentType))

	source, err := newSource(&Config{ModelManifests: filepath.Join("..", "..", "core", "manifest", "testdata")})
	require.NoError(t, err)

	keys, err := publish(ctx, source, driver)
	require.NoError(t, err)
	assert.Equal(t, "master.json", keys[len(keys)-1])
	assert.Contains(t, keys, "objects/user.json")

	data, err := os.ReadFile(filepath.Join(dir, "master.json"))
	require.NoError(t, err)
	var master dataobject.MasterDocument
	require.NoError(t, json.Unmarshal(data, &master))
	assert.Len(t, keys, len(master.DataObjects)+1)

	data, err = os.ReadFile(filepath.Join(dir, "objects", "user.json"))
	require.NoError(t, err)
	var user dataobject.ObjectDescription
	require.NoError(t, json.Unmarshal(data, &user))
	assert.Equal(t, "User", user.Name)

	_, err = os.Stat(filepath.Join(dir, "objects", "gone.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewSourceMissingManifests(t *testing.T) {
	_, err := newSource(&Config{ModelManifests: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}
