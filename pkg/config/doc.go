// Package config defines the server configuration model and YAML loading.
//
// Configuration is loaded from a single YAML file, filled in with defaults,
// optionally overridden by RADIUSD_* environment variables, and validated
// before the server starts. The map blocks defined here are compiled into
// evaluable map-processor instances by pkg/mapproc.
//
// Example configuration:
//
//	server:
//	  listen_address: "127.0.0.1:18120"
//	  watch_config: true
//	logging:
//	  level: info
//	  format: json
//	modules:
//	  sql:
//	    enabled: true
//	    dsn: "data/users.db"
//	maps:
//	  - name: lookup-user
//	    processor: sql
//	    src: "SELECT groupname, priority FROM radusergroup WHERE username = '%{User-Name}'"
//	    maps:
//	      - dst: "control:Group-Name"
//	        op: ":="
//	        src: groupname
package config
