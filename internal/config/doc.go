// Package config loads holocron's runtime settings.
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. ~/.config/holocron/config.toml, or the path given to Load
//  3. HOLOCRON_* environment variables (ApplyEnv)
//
// A missing config file is not an error. Recognised keys:
//
//	film_url        = "https://swapi.dev/api/films/2/"
//	title           = "Empire Strikes Back - Species Listing"
//	timeout         = "10s"
//	log_dir         = "~/.local/state/holocron"
//	log_level       = "INFO"
//	max_concurrency = 0   # 0 fetches every species at once
//
// Paths beginning with ~ are expanded against the user's home directory.
// Command-line flags are applied on top by package app.
package config
