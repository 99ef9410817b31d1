package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		SessionTTL       Duration `json:"session_ttl"`
		PasswordHashCost int      `json:"password_hash_cost"`
		Version          string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Cache struct {
			Backend  string `json:"backend"`
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"cache,omitempty"`

		Files struct {
			Backend    string `json:"backend"`
			FolderPath string `json:"folder_path"`
			MinIO      struct {
				Endpoint  string `json:"endpoint"`
				AccessKey string `json:"access_key"`
				SecretKey string `json:"secret_key"`
				Bucket    string `json:"bucket"`
				UseSSL    bool   `json:"use_ssl"`
			} `json:"minio,omitempty"`
		} `json:"files,omitempty"`

		Queue struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"queue,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		Concurrency     int      `json:"concurrency"`
		PollInterval    Duration `json:"poll_interval"`
		LeaseDuration   Duration `json:"lease_duration"`
		MaxAttempts     int      `json:"max_attempts"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	files := jsonCfg.Storage.Files
	cfg := &StructuredConfig{
		App: App{
			SessionTTL:       time.Duration(jsonCfg.App.SessionTTL),
			PasswordHashCost: jsonCfg.App.PasswordHashCost,
			Version:          jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Cache: Cache{
				Backend:  jsonCfg.Storage.Cache.Backend,
				Address:  jsonCfg.Storage.Cache.Address,
				Password: jsonCfg.Storage.Cache.Password,
				DB:       jsonCfg.Storage.Cache.DB,
			},
			Files: Files{
				Backend:    files.Backend,
				FolderPath: files.FolderPath,
				MinIO: MinIO{
					Endpoint:  files.MinIO.Endpoint,
					AccessKey: files.MinIO.AccessKey,
					SecretKey: files.MinIO.SecretKey,
					Bucket:    files.MinIO.Bucket,
					UseSSL:    files.MinIO.UseSSL,
				},
			},
			Queue: Queue{
				Address:  jsonCfg.Storage.Queue.Address,
				Password: jsonCfg.Storage.Queue.Password,
				DB:       jsonCfg.Storage.Queue.DB,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Workers: Workers{
			Concurrency:     jsonCfg.Workers.Concurrency,
			PollInterval:    time.Duration(jsonCfg.Workers.PollInterval),
			LeaseDuration:   time.Duration(jsonCfg.Workers.LeaseDuration),
			MaxAttempts:     jsonCfg.Workers.MaxAttempts,
			ShutdownTimeout: time.Duration(jsonCfg.Workers.ShutdownTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
