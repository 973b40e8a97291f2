package ctl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// buildRootCmd is a convenience for help-only fallbacks.
func buildRootCmd() *cobra.Command {
	return buildRootCmdWith(&Config{Addr: defaultBaseURL, LogLvl: "info"})
}

// buildRootCmdWith constructs a Cobra command tree wired to the fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "animctl",
		Short:         "Inspect and drive a running animd scheduler",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().String("addr", cfg.Addr, "animd base URL (defaults ANIMCTL_ADDR or http://127.0.0.1:8089)")
	root.PersistentFlags().String("log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults ANIMCTL_LOG_LEVEL or info)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("addr"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.Addr = v
			}
		}
		if f := cmd.InheritedFlags().Lookup("log-level"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.LogLvl = v
			}
		}
		SetLogLevel(cfg.LogLvl)
	}

	statusCmd := &cobra.Command{Use: "status", Short: "Print scheduler status once", Example: "  animctl status", RunE: func(cmd *cobra.Command, args []string) error { return fnStatus(cfg) }}
	watchCmd := &cobra.Command{Use: "watch", Short: "Live dashboard polling the scheduler", Example: "  animctl watch", RunE: func(cmd *cobra.Command, args []string) error { return fnWatch(cfg) }}

	demoCmd := &cobra.Command{Use: "demo", Short: "Run a scripted appear/hover/click/zoom/disappear scenario", Example: "  animctl demo --targets 12", RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("targets")
		if n <= 0 {
			return fmt.Errorf("--targets must be positive")
		}
		return fnDemo(cfg, n)
	}}
	demoCmd.Flags().Int("targets", envInt("ANIMCTL_DEMO_TARGETS", 8), "Number of demo targets to announce and animate")

	clearCmd := &cobra.Command{Use: "clear", Short: "Cancel everything and reset the scheduler", RunE: func(cmd *cobra.Command, args []string) error { return fnClear(cfg) }}
	cancelCmd := &cobra.Command{Use: "cancel <id>", Short: "Cancel one animation by id", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error { return fnCancel(cfg, args[0]) }}

	modeCmd := &cobra.Command{Use: "mode", Short: "Toggle cinematic display mode", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("mode requires a subcommand: on|off")
	}}
	modeOn := &cobra.Command{Use: "on", Short: "Enable cinematic mode", RunE: func(cmd *cobra.Command, args []string) error { return fnMode(cfg, true) }}
	modeOff := &cobra.Command{Use: "off", Short: "Disable cinematic mode", RunE: func(cmd *cobra.Command, args []string) error { return fnMode(cfg, false) }}
	modeCmd.AddCommand(modeOn, modeOff)

	root.AddCommand(statusCmd, watchCmd, demoCmd, clearCmd, cancelCmd, modeCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(os.Stdout) }})
	root.AddCommand(completionCmd)

	return root
}
