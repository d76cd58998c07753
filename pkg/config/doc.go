// Package config loads typed configuration structs from environment variables
// using caarlos0/env tags, with an optional .env file read through godotenv.
//
// Each struct type is parsed once per process and cached, so packages can
// call Load for their own Config without coordinating:
//
//	var cfg entitlement.Config
//	config.MustLoad(&cfg)
package config
