// Package config loads, normalizes, and validates autokit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// EMAIL_ADDRESS and EMAIL_PASSWORD. A .env file in the working directory is
// read before the environment is consulted so mail credentials can live next
// to the project that uses them.
//
// Always obtain settings through this package so tools receive expanded
// paths, a deterministic category table, and clear validation errors.
package config
