// Package config loads Taskify settings from defaults, an optional
// config.yaml and TASKIFY_* environment variables, then validates them.
// Settings are grouped by concern: server, database, auth, mail and storage.
package config
