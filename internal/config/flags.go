package config

import (
	"flag"
	"os"
	"time"

	"github.com/humiapp/humi/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the remote document store
//	-d string   local data directory
//	-t int      assistant poll timeout in seconds
//	-i int      background sync check interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "s", cfg.ServerBaseURL, "base URL of the remote document store")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	pollTimeout := fs.Int("t", int(cfg.PollTimeout.Seconds()), "assistant poll timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "sync check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollTimeout = time.Duration(*pollTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
