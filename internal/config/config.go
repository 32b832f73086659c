package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultStoreTimeout bounds every store call made by the engines.
	DefaultStoreTimeout = 5 * time.Second

	// DefaultMaxConns is the PostgreSQL pool size.
	DefaultMaxConns = 10

	// DefaultKafkaTopic receives one message per committed transition.
	// Publishing is disabled unless brokers are configured.
	DefaultKafkaTopic = "complytrack.transitions"

	// DefaultShutdownTimeout is how long in-flight requests get on SIGTERM.
	DefaultShutdownTimeout = 10 * time.Second
)
