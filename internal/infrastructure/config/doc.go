// Package config loads SuperKit settings.
//
// Values are layered: Default(), then superkit.toml or superkit.yaml in the
// project root, then environment variables (PORT, HOST, RELOAD, APPS_INCLUDE,
// LOG_LEVEL, ...). The result is validated before it is returned.
package config
