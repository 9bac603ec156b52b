// Package config provides configuration structures and utilities for spdrs.
// It defines the crawl options populated from CLI flags, the optional YAML
// site-configuration file, and the XDG directories used for the crawl
// history database.
package config
