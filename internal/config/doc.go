// Package config loads and merges revue configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (REVUE_PROVIDER, REVUE_MODEL, REVUE_MIN_SEVERITY, etc.)
//  3. Config file (.revue.yml in the working directory, else
//     $XDG_CONFIG_HOME/revue/config.yml)
//  4. Built-in defaults
//
// A .env file in the working directory, when present, is loaded into the
// process environment before the environment merge runs. Components never
// read ambient state themselves; the loaded [Config] value is passed in
// explicitly.
package config
