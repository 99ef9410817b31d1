// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] can start the
// server and worker processes.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.SessionTTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordHashCost < bcrypt.MinCost || cfg.App.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password hash cost %d is out of range", ErrInvalidAppConfigs, cfg.App.PasswordHashCost)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	switch cfg.Storage.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.Storage.Cache.Address == "" {
			return fmt.Errorf("%w: empty redis address", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidStorageConfigs, cfg.Storage.Cache.Backend)
	}

	switch cfg.Storage.Files.Backend {
	case FilesBackendLocal:
		if cfg.Storage.Files.FolderPath == "" {
			return fmt.Errorf("%w: empty folder path", ErrInvalidStorageConfigs)
		}
	case FilesBackendMinIO:
		m := cfg.Storage.Files.MinIO
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
			return fmt.Errorf("%w: incomplete minio settings", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown files backend %q", ErrInvalidStorageConfigs, cfg.Storage.Files.Backend)
	}

	if cfg.Storage.Queue.Address == "" {
		return fmt.Errorf("%w: empty queue redis address", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.Concurrency < 1 || cfg.Workers.PollInterval <= 0 ||
		cfg.Workers.LeaseDuration <= 0 || cfg.Workers.MaxAttempts < 1 ||
		cfg.Workers.ShutdownTimeout <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
