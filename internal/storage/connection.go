// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// Package storage abstracts the object storage backends that the
// example workloads in internal/workload read from and write to
// between worker breakpoints.
package storage

import "fmt"

// Connection is a storage backend capable of storing and retrieving
// byte-addressed objects by key. A controllable worker performs at most
// one storage operation at a time on the goroutine running its execute
// routine, but one Connection may be shared by several workers (siowork
// shares one across all of its workers), so its methods can be called
// from several goroutines at once.
type Connection interface {
	// Target returns a human-readable description of the backend,
	// suitable for logging.
	Target() string

	// Connect prepares the connection for use (creating a bucket,
	// checking a mount point exists, and so on).
	Connect() error

	// Close releases any resources the connection holds open.
	Close() error

	PutObject(key string, contents []byte) error
	GetObject(key string) ([]byte, error)
	DeleteObject(key string) error
}

// Config carries backend-specific connection parameters, keyed by
// name (bucket, access key, pool, mount point...).
type Config map[string]string

// New mints a Connection of the given kind against target. The "rados"
// kind is only available on linux, where librados is present.
func New(kind string, target string, config Config) (Connection, error) {
	switch kind {
	case "file":
		return NewFileConnection(target, config)
	case "s3":
		return NewS3Connection(target, config)
	}

	if conn, ok, err := newPlatformConnection(kind, target, config); ok {
		return conn, err
	}

	return nil, fmt.Errorf("storage: unknown connection kind %q", kind)
}
