// Package config provides configuration structures and utilities for
// robotsmeta. It defines the CLI options, the YAML page file that describes
// the crawler info of each page, and the lookup of that file on disk.
package config
