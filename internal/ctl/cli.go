package ctl

import (
	"fmt"
	"os"
)

// Config carries the persistent CLI settings resolved from flags and env.
type Config struct {
	Addr   string
	LogLvl string
}

const defaultBaseURL = "http://127.0.0.1:8089"

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code (0 for success, non-zero on error).
func MainWithArgs(args []string) int {
	cfg := &Config{
		Addr:   envStr("ANIMCTL_ADDR", defaultBaseURL),
		LogLvl: envStr("ANIMCTL_LOG_LEVEL", "info"),
	}
	root := buildRootCmdWith(cfg)
	if len(args) == 0 {
		_ = root.Help()
		return 2
	}
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// Main returns an exit code (0 for success, non-zero on error) for use by cmd/animctl.
func Main() int { return MainWithArgs(os.Args[1:]) }
