// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package kss

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/relabs-tech/dataobjects/core/logger"
)

// LocalFilesystem stores every key as a file below a base folder
type LocalFilesystem struct {
	baseFolder string
}

// NewLocalFilesystem returns a new LocalFilesystem. The base folder is created
// if it does not exist yet.
func NewLocalFilesystem(config LocalConfiguration) (*LocalFilesystem, error) {
	if config.BasePath == "" {
		return nil, fmt.Errorf("BasePath must not be empty")
	}
	if err := os.MkdirAll(config.BasePath, 0o755); err != nil {
		return nil, err
	}
	logger.Default().Debugln("KSS local filesystem enabled in", config.BasePath)
	return &LocalFilesystem{baseFolder: config.BasePath}, nil
}

func (f *LocalFilesystem) path(key string) string {
	return filepath.Join(f.baseFolder, filepath.FromSlash(key))
}

// UploadData writes data into the file of key. The content type is implied
// by the file extension of the key.
func (f *LocalFilesystem) UploadData(ctx context.Context, key string, data []byte, contentType string) error {
	if err := validKey(key); err != nil {
		return err
	}
	p := f.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		logger.FromContext(ctx).WithError(err).Errorf("Error 1202: Could not create folder for key: '%s'", key)
		return err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		logger.FromContext(ctx).WithError(err).Errorf("Error 1203: Could not write key: '%s'", key)
		return err
	}
	logger.FromContext(ctx).Infof("Filesystem: uploaded key '%s' (%d bytes, %s)", key, len(data), contentType)
	return nil
}

// ListAllWithPrefix lists all keys starting with prefix, sorted
func (f *LocalFilesystem) ListAllWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}
	err := filepath.WalkDir(f.baseFolder, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(f.baseFolder, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	sort.Strings(keys)
	return keys, err
}

// Delete deletes the key file
func (f *LocalFilesystem) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// DeleteAllWithPrefix deletes all keys starting with prefix
func (f *LocalFilesystem) DeleteAllWithPrefix(ctx context.Context, prefix string) error {
	keys, err := f.ListAllWithPrefix(ctx, prefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := f.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
