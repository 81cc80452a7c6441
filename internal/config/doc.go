// Package config loads the service configuration.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables use the TRADE_ prefix followed by the section
// and field name:
//
//	TRADE_SERVER_PORT=8080
//	TRADE_DATA_TRADE_FILE=data/trade_data.csv
//	TRADE_DATA_BOUNDARY_FILE=data/countries.geojson
//	TRADE_MAP_DEFAULT_LATITUDE=29
//	TRADE_LOGGING_LEVEL=debug
//
// # Configuration File
//
// The file is taken from TRADE_CONFIG_FILE or, if unset, the first of
// config.yaml and configs/config.yaml that exists:
//
//	server:
//	  port: 8080
//	data:
//	  trade_file: data/trade_data.csv
//	  boundary_file: data/countries.geojson
//	map:
//	  zoom: 5
//	  color_scale: Viridis
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
