// Package config loads go-fragments settings from YAML with embedded defaults
// and FRAGMENTS_* environment overrides. The code tables it carries are read
// once at startup; the composer copies them and never consults the Config
// again.
package config
