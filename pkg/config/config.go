package config

import "time"

// Config is the root configuration structure for the server. It contains
// the admin server settings, observability configuration, module settings,
// and the map blocks that drive attribute mapping.
type Config struct {
	// Server contains the admin/evaluation HTTP server configuration.
	Server ServerConfig `yaml:"server"`

	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// QueryLog contains the evaluation audit log configuration.
	QueryLog QueryLogConfig `yaml:"query_log"`

	// Modules contains per-module settings for the built-in map processor
	// modules. Disabled modules are never registered.
	Modules ModulesConfig `yaml:"modules"`

	// Maps lists the configured map blocks, compiled in order at startup
	// and evaluated in order for each request.
	Maps []MapBlock `yaml:"maps"`
}

// ServerConfig contains the admin HTTP server configuration.
type ServerConfig struct {
	// ListenAddress is the address and port the admin server listens on.
	// Default: "127.0.0.1:18120"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown. Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// WatchConfig enables hot reload of map blocks when the configuration
	// file changes on disk. Default: false
	WatchConfig bool `yaml:"watch_config"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed on
	// /metrics. Default: true
	Enabled *bool `yaml:"enabled"`

	// Namespace is the metric name prefix. Default: "radiusd"
	Namespace string `yaml:"namespace"`

	// Subsystem groups the map-processing metrics. Default: "mapproc"
	Subsystem string `yaml:"subsystem"`
}

// QueryLogConfig contains the evaluation audit log configuration.
type QueryLogConfig struct {
	// Enabled controls whether evaluations are recorded. Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file for the query log.
	// Default: "data/querylog.db"
	Path string `yaml:"path"`

	// BufferSize is the async recorder buffer size. Default: 1024
	BufferSize int `yaml:"buffer_size"`

	// RetentionDays is how long records are kept before pruning.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is a cron expression controlling when pruning runs.
	// Empty disables scheduled pruning. Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// ModulesConfig contains settings for the built-in map processor modules.
type ModulesConfig struct {
	SQL  SQLModuleConfig  `yaml:"sql"`
	REST RESTModuleConfig `yaml:"rest"`
}

// SQLModuleConfig configures the SQL map processor module.
type SQLModuleConfig struct {
	// Enabled controls whether the module is registered. Default: false
	Enabled bool `yaml:"enabled"`

	// DSN is the SQLite data source name (database file path, optionally
	// with connection parameters).
	DSN string `yaml:"dsn"`

	// MaxOpenConns limits the connection pool. Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// QueryTimeout bounds each query. Default: 5s
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// RESTModuleConfig configures the REST map processor module.
type RESTModuleConfig struct {
	// Enabled controls whether the module is registered. Default: false
	Enabled bool `yaml:"enabled"`

	// Timeout bounds each HTTP request. Default: 5s
	Timeout time.Duration `yaml:"timeout"`

	// MaxBodyBytes limits the size of response bodies read by the module.
	// Default: 1048576 (1MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// MapBlock is one configured map section: a named binding of a map
// processor to a source template and a list of attribute maps.
type MapBlock struct {
	// Name identifies the block in logs, metrics, and the query log.
	Name string `yaml:"name"`

	// Processor is the registered map processor name to evaluate with.
	Processor string `yaml:"processor"`

	// Src is the source template, expanded per request before the
	// processor runs.
	Src string `yaml:"src"`

	// Maps are the attribute assignment rules applied by the processor.
	Maps []MapEntry `yaml:"maps"`
}

// MapEntry is one source-to-destination attribute assignment rule.
type MapEntry struct {
	// Dst is the destination attribute, optionally prefixed with a list
	// ("reply:", "control:", "request:").
	Dst string `yaml:"dst"`

	// Op is the assignment operator: ":=", "=" or "+=". Default: ":="
	Op string `yaml:"op"`

	// Src is the processor-specific source (a column name for SQL, a
	// JSON field for REST).
	Src string `yaml:"src"`
}
