// The root command for the CLI.
// This root 'composes' the subcommands and owns the global flags; each
// subcommand loads the configuration from these flags when it runs.
package cmd

import (
	"github.com/spf13/cobra"

	resolveCommand "github.com/redjax/kparams/internal/commands/resolveCommand"
	"github.com/redjax/kparams/internal/commands/showCommand"
	versionCommand "github.com/redjax/kparams/internal/commands/versionCommand"
)

// NewRootCmd builds the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kparams",
		Short: "Resolve platform-specific structure offsets and constants.",
		Long: `Resolve the structure offsets, sizes and constants that depend on the
device model and OS build this process runs on.

Run kparams resolve to check that a platform is covered.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	// Global flags; mapped onto config keys by config.LoadConfig
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (yaml, json, toml or .env)")
	flags.BoolP("debug", "D", false, "Enable debug logging")
	flags.String("log-format", "text", "Log format: text or json")
	flags.String("device", "", "Override the detected device model, e.g. iPhone11,8")
	flags.String("build", "", "Override the detected OS build, e.g. 16C50")
	flags.String("profile", "", "Force an offsets profile by name")
	flags.StringArray("marker", nil, "Extra device-family marker selecting the iPhone11,8 offsets (repeatable)")
	flags.Int("min-offsets", 2, "Minimum number of offset records that must run")
	flags.String("matcher", "substring", "Pattern matcher: substring or exact")

	rootCmd.AddCommand(resolveCommand.NewResolveCommand())
	rootCmd.AddCommand(showCommand.NewShowCmd())
	rootCmd.AddCommand(versionCommand.NewVersionCommand())

	return rootCmd
}

// Execute the root Cobra command
func Execute() {
	cobra.CheckErr(NewRootCmd().Execute())
}
