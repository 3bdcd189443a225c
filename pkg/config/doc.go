// Package config loads and validates shelfd configuration files: the
// backend base URL, credentials location, logging setup, and the resource
// declarations the catalog is built from.
package config
