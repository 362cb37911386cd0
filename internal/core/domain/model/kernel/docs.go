// Package kernel contains shared value objects used across the domain model:
// geographic points and entity identifiers. All types follow the constructor
// guard pattern so that zero values are detectably invalid.
package kernel
