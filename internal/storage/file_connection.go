// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/softiron/cworker/internal/logger"
)

// FileConnection talks to a directory that is already locally mounted
// (or is just a plain local directory, for tests and demos).
type FileConnection struct {
	dir string
}

// NewFileConnection builds a FileConnection rooted at dir.
func NewFileConnection(dir string, config Config) (*FileConnection, error) {
	return &FileConnection{dir: dir}, nil
}

func (c *FileConnection) Target() string {
	return c.dir
}

func (c *FileConnection) Connect() error {
	logger.Infof("storage: opening file connection to %v\n", c.dir)

	info, err := os.Stat(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage: directory does not exist: %v", c.dir)
		}
		return fmt.Errorf("storage: cannot stat directory %v: %v", c.dir, err)
	}

	if !info.Mode().IsDir() {
		return fmt.Errorf("storage: not a directory: %v", c.dir)
	}

	return nil
}

func (c *FileConnection) Close() error {
	logger.Infof("storage: closing file connection to %v\n", c.dir)
	return nil
}

func (c *FileConnection) PutObject(key string, contents []byte) error {
	filename := filepath.Join(c.dir, key)

	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(contents)
	return err
}

func (c *FileConnection) GetObject(key string) ([]byte, error) {
	filename := filepath.Join(c.dir, key)
	return os.ReadFile(filename)
}

func (c *FileConnection) DeleteObject(key string) error {
	filename := filepath.Join(c.dir, key)
	return os.Remove(filename)
}
