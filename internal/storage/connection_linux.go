//go:build linux

package storage

// newPlatformConnection adds the linux-only, librados-backed "rados"
// connection kind to New.
func newPlatformConnection(kind string, target string, config Config) (Connection, bool, error) {
	if kind != "rados" {
		return nil, false, nil
	}

	conn, err := NewRadosConnection(target, config)
	return conn, true, err
}
