// Package config holds the application configuration.
//
// Configuration is assembled in layers: compiled-in defaults, then an
// optional YAML file (.linkaudit in the working or home directory, or an
// explicit path), then CLI flags. The Config struct is passed through the
// application by value via dependency injection; there is no global state.
package config
