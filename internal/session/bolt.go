package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/altinukshini/dnafinder/internal/logger"
)

const boltDefaultBucket = "session"

// KV is the small key/value surface the session store persists through.
type KV interface {
	Set(key string, value string) error
	Get(key string) (string, error)
	Delete(key string) error
	Close() error
}

type BoltDB struct {
	store  *bolt.DB
	logger logger.Logger
}

func OpenBolt(path string, log logger.Logger) (*BoltDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Error("failed to create state directory", "err", err.Error(), "path", path)
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	store, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		log.Error("failed to open state database", "err", err.Error(), "path", path)
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	db := &BoltDB{store: store, logger: log}
	if err := db.initBucket(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return db, nil
}

func (b *BoltDB) initBucket() error {
	return b.store.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(boltDefaultBucket)); err != nil {
			b.logger.Error("failed to create bucket", "err", err.Error())
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return nil
	})
}

func (b *BoltDB) Set(key string, value string) error {
	if key == "" {
		return &InvalidKeyError{Key: key, Reason: "key cannot be empty"}
	}

	return b.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(boltDefaultBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found")
		}
		if err := bucket.Put([]byte(key), []byte(value)); err != nil {
			b.logger.Error("failed to set key", "key", key, "err", err.Error())
			return fmt.Errorf("failed to set key %s: %w", key, err)
		}
		return nil
	})
}

func (b *BoltDB) Get(key string) (string, error) {
	if key == "" {
		return "", &InvalidKeyError{Key: key, Reason: "key cannot be empty"}
	}

	var value []byte
	err := b.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(boltDefaultBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found")
		}
		v := bucket.Get([]byte(key))
		if v == nil {
			return &NotFoundError{Key: key}
		}
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			b.logger.Error("failed to get key", "key", key, "err", err.Error())
		}
		return "", err
	}
	return string(value), nil
}

func (b *BoltDB) Delete(key string) error {
	if key == "" {
		return &InvalidKeyError{Key: key, Reason: "key cannot be empty"}
	}

	return b.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(boltDefaultBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found")
		}
		if err := bucket.Delete([]byte(key)); err != nil {
			b.logger.Error("failed to delete key", "key", key, "err", err.Error())
			return fmt.Errorf("failed to delete key %s: %w", key, err)
		}
		return nil
	})
}

func (b *BoltDB) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}
