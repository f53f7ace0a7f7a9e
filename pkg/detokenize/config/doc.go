/*
Package config reads detok settings from YAML or JSON files.

# Overview

Config wraps a map[string]any and provides typed accessors that return a
default when a key is missing or has the wrong type. Settings is the
resolved view the detok command uses.

# Basic Usage

	cfg, err := config.FromFile("detok.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	timeout := cfg.Duration("timeout", 30*time.Second)
	level := cfg.Level("log_level", slog.LevelWarn)

	settings := config.SettingsFrom(cfg)

A settings file looks like:

	store: ~/.local/share/detok/values.db
	timeout: 10s
	log_level: debug
	values: ./values.yaml
	no_color: true

# Type Coercion

Duration accepts a time.ParseDuration string, a number of seconds or a
time.Duration. Level accepts debug, info, warn or error in any case.

# Thread Safety

Config is safe for concurrent read access once created.
*/
package config
