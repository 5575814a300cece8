// Package config loads the optional YAML settings file of the Hexoban server.
//
// Every field has a default, so a file only needs the values it changes:
//
//	server:
//	  port: 9090
//	sessions:
//	  backend: redis
//	  max_age: 12h
//	redis:
//	  address: localhost:6379
//	  ttl: 48h
//
// Command-line flags override the file.
package config
