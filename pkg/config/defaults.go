package config

import "time"

// Default values applied by ApplyDefaults.
const (
	DefaultListenAddress   = "127.0.0.1:18120"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "radiusd"
	DefaultMetricsSubsystem = "mapproc"

	DefaultQueryLogPath      = "data/querylog.db"
	DefaultQueryLogBuffer    = 1024
	DefaultRetentionDays     = 30
	DefaultPruneSchedule     = "0 3 * * *"
	DefaultSQLMaxOpenConns   = 4
	DefaultSQLQueryTimeout   = 5 * time.Second
	DefaultRESTTimeout       = 5 * time.Second
	DefaultRESTMaxBodyBytes  = 1 << 20
	DefaultMapEntryOperation = ":="
)

// ApplyDefaults fills in default values for any unset fields. It is called
// by Load before validation so that a minimal configuration file is enough
// to start the server.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Metrics.Enabled == nil {
		enabled := true
		cfg.Metrics.Enabled = &enabled
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}

	if cfg.QueryLog.Path == "" {
		cfg.QueryLog.Path = DefaultQueryLogPath
	}
	if cfg.QueryLog.BufferSize <= 0 {
		cfg.QueryLog.BufferSize = DefaultQueryLogBuffer
	}
	if cfg.QueryLog.RetentionDays == 0 {
		cfg.QueryLog.RetentionDays = DefaultRetentionDays
	}
	if cfg.QueryLog.PruneSchedule == "" {
		cfg.QueryLog.PruneSchedule = DefaultPruneSchedule
	}

	if cfg.Modules.SQL.MaxOpenConns <= 0 {
		cfg.Modules.SQL.MaxOpenConns = DefaultSQLMaxOpenConns
	}
	if cfg.Modules.SQL.QueryTimeout == 0 {
		cfg.Modules.SQL.QueryTimeout = DefaultSQLQueryTimeout
	}

	if cfg.Modules.REST.Timeout == 0 {
		cfg.Modules.REST.Timeout = DefaultRESTTimeout
	}
	if cfg.Modules.REST.MaxBodyBytes <= 0 {
		cfg.Modules.REST.MaxBodyBytes = DefaultRESTMaxBodyBytes
	}

	for i := range cfg.Maps {
		for j := range cfg.Maps[i].Maps {
			if cfg.Maps[i].Maps[j].Op == "" {
				cfg.Maps[i].Maps[j].Op = DefaultMapEntryOperation
			}
		}
	}
}
