// Package config loads ticker configuration from defaults, an optional
// YAML file and environment variables, in ascending priority.
//
// The environment surface keeps the historical variable names TG_TOKEN,
// TG_CHAT_ID and POST_EXISTING so existing cron deployments keep working.
package config
