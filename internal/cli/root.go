// Package cli provides the command-line interface for pwscripts.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Piiit/pwScripts/internal/cli/commands"
	"github.com/Piiit/pwScripts/internal/cli/config"
	"github.com/Piiit/pwScripts/pkg/parser"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "2.0.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	commands.Version = Version
	rootCmd := &cobra.Command{
		Use:   "pwscripts",
		Short: "pwscripts - PostgreSQL query results as TikZ timelines",
		Long: `pwscripts turns PostgreSQL query output into LaTeX artifacts.

Annotate a psql transcript or a tab-separated dump with TIKZ directive
comments, and pwscripts renders the tuples as interval bars on a shared
time axis, as LaTeX tables, or both combined.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			if cfg.Verbose && config.FileUsed() != "" {
				logger.Debug("using config file", "path", config.FileUsed())
			}

			ctx := context.WithValue(cmd.Context(), commands.ConfigKey{}, cfg)
			ctx = context.WithValue(ctx, commands.LoggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
TikZ timeline and LaTeX table generator for temporal databases
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./pwscripts.yaml)")
	rootCmd.PersistentFlags().String("xscale", "", "horizontal scale of the tikzpicture")
	rootCmd.PersistentFlags().String("yscale", "", "vertical scale of the tikzpicture")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewHistCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command. Parser errors carry a corrective hint
// which is printed after the message, the way psql prints its HINT
// lines.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("ERROR:"), err)
		var perr *parser.Error
		if errors.As(err, &perr) && perr.Hint != "" {
			fmt.Fprintf(os.Stderr, "%s %s\n", hintStyle.Render("HINT:"), perr.Hint)
		}
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pwscripts.

To load completions:

Bash:
  $ source <(pwscripts completion bash)

Zsh:
  $ pwscripts completion zsh > "${fpath[1]}/_pwscripts"

Fish:
  $ pwscripts completion fish | source

PowerShell:
  PS> pwscripts completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
