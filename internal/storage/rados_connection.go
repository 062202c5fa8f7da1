//go:build linux

package storage

import (
	"fmt"

	"github.com/ceph/go-ceph/rados"

	"github.com/softiron/cworker/internal/logger"
)

// RadosConnection talks raw RADOS to a Ceph cluster via librados.
type RadosConnection struct {
	monitor string
	config  Config
	client  *rados.Conn
	ioctx   *rados.IOContext
}

// NewRadosConnection builds a RadosConnection to the monitor(s) at
// target. username, key, and pool are read from config at Connect time.
func NewRadosConnection(target string, config Config) (*RadosConnection, error) {
	return &RadosConnection{monitor: target, config: config}, nil
}

func (c *RadosConnection) Target() string {
	return c.monitor
}

func (c *RadosConnection) Connect() error {
	client, err := newCephClient(c.monitor, c.config)
	if err != nil {
		return err
	}

	ioctx, err := client.OpenIOContext(c.config["pool"])
	if err != nil {
		client.Shutdown()
		return err
	}

	c.client = client
	c.ioctx = ioctx
	return nil
}

func (c *RadosConnection) Close() error {
	c.ioctx.Destroy()
	c.client.Shutdown()
	return nil
}

func (c *RadosConnection) PutObject(key string, contents []byte) error {
	logger.Tracef("storage: rados write %v on %v: start\n", key, c.monitor)
	err := c.ioctx.WriteFull(key, contents)
	logger.Tracef("storage: rados write %v on %v: end\n", key, c.monitor)
	return err
}

func (c *RadosConnection) GetObject(key string) ([]byte, error) {
	stat, err := c.ioctx.Stat(key)
	if err != nil {
		return nil, err
	}

	buffer := make([]byte, stat.Size)
	nread, err := c.ioctx.Read(key, buffer, 0)
	if err != nil {
		return nil, err
	}

	if uint64(nread) != stat.Size {
		return nil, fmt.Errorf("storage: short rados read: wanted %v bytes, got %v", stat.Size, nread)
	}

	return buffer, nil
}

func (c *RadosConnection) DeleteObject(key string) error {
	return c.ioctx.Delete(key)
}

// newCephClient opens a low-level librados connection using the
// username, key, and pool entries in config, enabling Ceph's own debug
// logging when cworker's logger is at trace level.
func newCephClient(monitor string, config Config) (*rados.Conn, error) {
	client, err := rados.NewConnWithUser(config["username"])
	if err != nil {
		return nil, err
	}

	if err := client.SetConfigOption("mon_host", monitor); err != nil {
		return nil, err
	}
	if err := client.SetConfigOption("key", config["key"]); err != nil {
		return nil, err
	}

	if logger.IsTrace() {
		for _, opt := range [][2]string{
			{"debug_rados", "20"},
			{"debug_objecter", "20"},
			{"log_to_stderr", "true"},
		} {
			if err := client.SetConfigOption(opt[0], opt[1]); err != nil {
				return nil, err
			}
		}
	}

	logger.Infof("storage: creating rados client to %v as user %v\n", monitor, config["username"])

	if err := client.Connect(); err != nil {
		return nil, err
	}

	pool := config["pool"]
	pools, err := client.ListPools()
	if err != nil {
		client.Shutdown()
		return nil, err
	}

	found := false
	for _, p := range pools {
		if p == pool {
			found = true
			break
		}
	}
	if !found {
		client.Shutdown()
		return nil, fmt.Errorf("storage: no such Ceph pool: %v", pool)
	}

	return client, nil
}
