// Package config loads runtime configuration for the Humi CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables for secrets and endpoints (see parseEnv);
//     a .env file loaded at startup feeds these in development.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   base URL of the remote document store
//	-d string   local data directory
//	-t int      assistant poll timeout (seconds)
//	-i int      background sync check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "ai_base_url": "https://api.openai.com/v1",
//	  "assistant_id": "asst_abc123",
//	  "vision_model": "gpt-4o",
//	  "server_base_url": "https://api.humi.example",
//	  "data_dir": "/var/lib/humi",
//	  "poll_timeout": "60s",
//	  "online_check_interval": "30s",
//	  "s3_bucket": "humi-cigar-images"
//	}
package config
