// Package notifications publishes tool outcomes to ntfy.
//
// The service posts to the topic URL configured in config.toml and degrades
// to a no-op when no topic is set. Each Event has a fixed title, tag set and
// message layout so every tool reports completions and failures the same way.
// Publishing is best-effort: callers log a returned error and carry on.
package notifications
