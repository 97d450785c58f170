// Package config loads the digits configuration file.
package config
