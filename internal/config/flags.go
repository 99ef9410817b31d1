package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the configuration flags of the server and worker
// processes from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-f payload folder path
//	-r redis address in format [host]:[port]
//	-q queue redis address in format [host]:[port]
//	-c/-config json file path with configs
//	-cache-backend redis|memory
//	-files-backend local|minio
//	-session-ttl session duration (e.g., "24h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-concurrency jobs processed in parallel per queue
//	-poll-interval idle consumer poll interval (e.g., "1s")
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, redisAddress, queueAddress NetAddress
	var folderPath string
	var databaseDSN string
	var jsonConfigPath string
	var cacheBackend, filesBackend string
	var sessionTTL time.Duration
	var requestTimeout time.Duration
	var concurrency int
	var pollInterval time.Duration

	fs := flag.NewFlagSet("files-manager", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&redisAddress, "r", "Redis address host:port")
	fs.Var(&queueAddress, "q", "Queue Redis address host:port")
	fs.StringVar(&folderPath, "f", "", "Payload folder path")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cacheBackend, "cache-backend", "", "Session cache backend (redis, memory)")
	fs.StringVar(&filesBackend, "files-backend", "", "Payload store backend (local, minio)")
	fs.DurationVar(&sessionTTL, "session-ttl", 0, "Session duration (e.g., 24h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&concurrency, "concurrency", 0, "Jobs processed in parallel per queue")
	fs.DurationVar(&pollInterval, "poll-interval", 0, "Idle consumer poll interval (e.g., 1s)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			SessionTTL: sessionTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Cache: Cache{
				Backend: cacheBackend,
				Address: redisAddress.String(),
			},
			Files: Files{
				Backend:    filesBackend,
				FolderPath: folderPath,
			},
			Queue: Queue{
				Address: queueAddress.String(),
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			Concurrency:  concurrency,
			PollInterval: pollInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
