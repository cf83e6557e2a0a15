// Radiusd hosts the map-processor evaluation pipeline.
//
// It loads map blocks from a YAML configuration, registers the built-in
// map processor modules (sql, rest), and serves a small HTTP admin surface
// for evaluating requests and scraping metrics.
//
// Usage:
//
//	# Start the server with the default configuration file
//	radiusd run
//
//	# Start with a custom configuration file
//	radiusd run --config /etc/radiusd/config.yaml
//
//	# Validate the configuration and compile map blocks without serving
//	radiusd check
//
//	# Show version information
//	radiusd version
package main

func main() {
	Execute()
}
