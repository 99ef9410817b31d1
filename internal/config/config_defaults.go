package config

import "time"

// Built-in defaults applied after every other source.
const (
	DefaultSessionTTL       = 24 * time.Hour
	DefaultPasswordHashCost = 10
	DefaultHTTPAddress      = "0.0.0.0:5000"
	DefaultCacheAddress     = "localhost:6379"
	DefaultFolderPath       = "/tmp/files_manager"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionTTL:       DefaultSessionTTL,
			PasswordHashCost: DefaultPasswordHashCost,
			Version:          "dev",
		},
		Storage: Storage{
			Cache: Cache{
				Backend: CacheBackendRedis,
				Address: DefaultCacheAddress,
			},
			Files: Files{
				Backend:    FilesBackendLocal,
				FolderPath: DefaultFolderPath,
			},
			Queue: Queue{
				Address: DefaultCacheAddress,
			},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "localhost:5000",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			Concurrency:     2,
			PollInterval:    time.Second,
			LeaseDuration:   time.Minute,
			MaxAttempts:     3,
			ShutdownTimeout: 30 * time.Second,
		},
	}
}
