// Package config loads typed configuration from environment variables.
//
// Load parses `env`-tagged structs via caarlos0/env after reading the
// default .env file through godotenv. Each configuration type is parsed
// once per process and cached, so components can call Load for the
// types they need without coordinating startup order.
//
//	var cfg config.App
//	config.MustLoad(&cfg)
package config
