//go:build !linux

package storage

// newPlatformConnection reports false on platforms without a RadosConnection.
func newPlatformConnection(kind string, target string, config Config) (Connection, bool, error) {
	return nil, false, nil
}
