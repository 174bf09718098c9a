// Package store persists schemas by name in a bbolt database. Schemas are
// kept in their ordered JSON form so property order survives a reload.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

const bucketSchemas = "schemas" // key: name -> schema JSON

var (
	// ErrNotFound is returned when no schema is stored under a name.
	ErrNotFound = errors.New("store: schema not found")
	// ErrNameRequired is returned for empty schema names.
	ErrNameRequired = errors.New("store: name is required")
)

// Store is a bbolt-backed schema repository. It is safe for concurrent use.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store: path is required")
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSchemas))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: init buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put replaces the schema stored under name.
func (s *Store) Put(ctx context.Context, name string, value schema.Schema) error {
	if err := checkName(ctx, name); err != nil {
		return err
	}
	data, err := schema.Encode(value, schema.FormatJSON)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketSchemas)).Put([]byte(name), data)
	})
}

// Get returns the schema stored under name.
func (s *Store) Get(ctx context.Context, name string) (schema.Schema, error) {
	raw, err := s.GetRaw(ctx, name)
	if err != nil {
		return schema.Schema{}, err
	}
	out, err := schema.Parse(raw)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("store: decode %s: %w", name, err)
	}
	return out, nil
}

// GetRaw returns the stored JSON for name.
func (s *Store) GetRaw(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(ctx, name); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket([]byte(bucketSchemas)).Get([]byte(name))
		if value == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		data = append([]byte(nil), value...)
		return nil
	})
	return data, err
}

// Delete removes name. Deleting a missing name returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := checkName(ctx, name); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSchemas))
		if bucket.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return bucket.Delete([]byte(name))
	})
}

// List returns every stored name in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := []string{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketSchemas)).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func checkName(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}
