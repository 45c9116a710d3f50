package showCommand

import (
	"github.com/spf13/cobra"
)

func NewShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show commands print information in the selected domain, i.e. show parameters.",
		Long: `Print platform and parameter data.

Show the detected platform identity, the resolved parameters, or the known offsets profiles.

Run kparams show --help to see all options.
`,
	}

	// Attach subcommands
	showCmd.AddCommand(NewPlatformCmd())
	showCmd.AddCommand(NewParametersCmd())
	showCmd.AddCommand(NewProfilesCmd())

	return showCmd
}
