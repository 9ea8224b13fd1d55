// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package main

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/relabs-tech/dataobjects/core/client"
	"github.com/relabs-tech/dataobjects/core/dataobject"
	"github.com/relabs-tech/dataobjects/core/kss"
	"github.com/relabs-tech/dataobjects/core/logger"
)

const (
	masterKey     = "master.json"
	objectsPrefix = "objects/"
	contentType   = "application/json"
)

// publish fetches the master document and every described object type from
// source and uploads them to driver. Object documents of types which no
// longer exist are removed. It returns the published keys.
func publish(ctx context.Context, source client.Client, driver kss.Driver) ([]string, error) {
	rlog := logger.FromContext(ctx)

	var masterData []byte
	if _, err := source.Master(&masterData); err != nil {
		return nil, fmt.Errorf("cannot fetch master document: %w", err)
	}
	var master dataobject.MasterDocument
	if err := json.Unmarshal(masterData, &master); err != nil {
		return nil, fmt.Errorf("cannot parse master document: %w", err)
	}

	published := map[string]bool{}
	keys := []string{}
	for _, summary := range master.DataObjects {
		var data []byte
		if _, err := source.Object(summary.ID, &data); err != nil {
			return keys, fmt.Errorf("cannot fetch object type %s: %w", summary.ID, err)
		}
		key := objectsPrefix + summary.ID + ".json"
		if err := driver.UploadData(ctx, key, data, contentType); err != nil {
			return keys, err
		}
		published[key] = true
		keys = append(keys, key)
	}

	// the master goes last, it must never reference missing documents
	if err := driver.UploadData(ctx, masterKey, masterData, contentType); err != nil {
		return keys, err
	}
	keys = append(keys, masterKey)

	existing, err := driver.ListAllWithPrefix(ctx, objectsPrefix)
	if err != nil {
		return keys, err
	}
	for _, key := range existing {
		if !published[key] {
			rlog.Infoln("removing stale document", key)
			if err := driver.Delete(ctx, key); err != nil {
				return keys, err
			}
		}
	}
	rlog.Infof("published %d documents", len(keys))
	return keys, nil
}
