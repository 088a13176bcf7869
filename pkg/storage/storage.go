// Package storage is Volt's file-attachment layer: one Disk interface with a
// local-filesystem driver and an S3-compatible driver (AWS, MinIO, R2).
//
//	storage.Connect()
//	storage.Put("avatars/jane.png", data)
//	url := storage.URL("avatars/jane.png")
//
//	s3, err := storage.Use("s3")
//	if err == nil {
//	    s3.Put("backups/dump.sql.gz", data)
//	}
package storage

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/voltframework/volt/config"
	"github.com/voltframework/volt/pkg/logger"
)

// ErrNotFound is returned when a path does not exist on the disk.
var ErrNotFound = errors.New("storage: file not found")

// Disk is implemented by every storage driver.
type Disk interface {
	Put(path string, content []byte) error
	PutStream(path string, r io.Reader) error
	Get(path string) ([]byte, error)
	GetStream(path string) (io.ReadCloser, error)
	Exists(path string) bool
	Size(path string) (int64, error)
	Delete(path string) error
	Files(dir string) ([]string, error)
	URL(path string) string
}

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultName = "local"
)

// Connect boots the configured disks. The local disk is always available;
// the s3 disk only when S3_BUCKET is set.
func Connect() {
	mu.Lock()
	defer mu.Unlock()

	defaultName = config.StorageDisk()
	disks["local"] = newLocalDisk()

	if config.S3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns a named disk ("local", "s3", or a registered custom disk).
func Use(name string) (Disk, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Register installs a custom Disk under name.
func Register(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

func def() Disk {
	mu.RLock()
	d, ok := disks[defaultName]
	mu.RUnlock()
	if !ok {
		// Storage used before Connect: fall back to an on-demand local disk.
		d = newLocalDisk()
		Register("local", d)
	}
	return d
}

// Default-disk helpers.

func Put(path string, content []byte) error        { return def().Put(path, content) }
func PutStream(path string, r io.Reader) error     { return def().PutStream(path, r) }
func Get(path string) ([]byte, error)              { return def().Get(path) }
func GetStream(path string) (io.ReadCloser, error) { return def().GetStream(path) }
func Exists(path string) bool                      { return def().Exists(path) }
func Size(path string) (int64, error)              { return def().Size(path) }
func Delete(path string) error                     { return def().Delete(path) }
func Files(dir string) ([]string, error)           { return def().Files(dir) }
func URL(path string) string                       { return def().URL(path) }
