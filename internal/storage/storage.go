// Package storage holds the single current CV and the single current job
// posting. Every save replaces the slot; there is no history and no locking
// across requests, so the last writer wins.
package storage

import (
	"context"
	"fmt"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"
)

// Kind identifies one of the two text slots.
type Kind string

const (
	KindMasterCV   Kind = "master_cv"
	KindJobPosting Kind = "job_posting"
)

// Kinds lists every slot.
var Kinds = []Kind{KindMasterCV, KindJobPosting}

// FileName is the on-disk (and object) name of the slot.
func (k Kind) FileName() string {
	return string(k) + ".txt"
}

func (k Kind) valid() bool {
	return k == KindMasterCV || k == KindJobPosting
}

// Store persists the slots. Get returns "" without error for a slot that
// was never written.
type Store interface {
	Save(ctx context.Context, kind Kind, text string) (location string, err error)
	Get(ctx context.Context, kind Kind) (string, error)
	Close() error
}

// New opens the backend selected in cfg.
func New(ctx context.Context, cfg config.StorageConfig, logger *errors.Logger) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Backend {
	case "", "file":
		store, err = NewFileStore(cfg.DataDir)
	case "memory":
		store = NewMemoryStore()
	case "redis":
		store, err = NewRedisStore(ctx, cfg.Redis)
	case "s3":
		store, err = NewS3Store(ctx, cfg.S3)
	case "postgres":
		store, err = NewPostgresStore(ctx, cfg.Postgres)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown storage backend: %s", cfg.Backend), nil)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Storage backend ready", "backend", backendName(cfg.Backend))
	return store, nil
}

func backendName(backend string) string {
	if backend == "" {
		return "file"
	}
	return backend
}

func invalidKind(kind Kind) error {
	return errors.NewInternalError(errors.ErrCodeStorageFailed,
		fmt.Sprintf("unknown storage slot: %q", kind), nil)
}

func saveError(kind Kind, cause error) error {
	return errors.NewStorageError(errors.ErrCodeStorageFailed,
		fmt.Sprintf("Kunde inte spara %s", kind), cause).WithContext("kind", string(kind))
}

func readError(kind Kind, cause error) error {
	return errors.NewStorageError(errors.ErrCodeStorageFailed,
		fmt.Sprintf("Kunde inte läsa %s", kind), cause).WithContext("kind", string(kind))
}
