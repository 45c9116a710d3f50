package resolvecommand

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	parameterservice "github.com/redjax/kparams/internal/services/parameterService"
	"github.com/redjax/kparams/internal/utils"
	"github.com/redjax/kparams/internal/utils/path"
)

var (
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

func NewResolveCommand() *cobra.Command {
	var (
		exportFormat string
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve parameters for this platform and report whether it is covered.",
		Long: `Detect the device model and OS build, run the matching initializations and
check that enough offsets were found.

Use --export to print (or with --output, write) the resolved parameters as json, yaml or toml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := utils.LoadCommandEnv(cmd)
			if err != nil {
				return err
			}

			resolver, err := env.Resolver()
			if err != nil {
				return err
			}

			ok := resolver.Init(cmd.Context())
			printReport(cmd.ErrOrStderr(), resolver.Report(), ok)
			if !ok {
				return resolver.Err()
			}

			if exportFormat == "" {
				return nil
			}
			return export(cmd.OutOrStdout(), resolver.Store(), exportFormat, outputPath)
		},
	}

	cmd.Flags().StringVar(&exportFormat, "export", "", "Export resolved parameters: json, yaml or toml")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the export to this file instead of stdout")

	return cmd
}

func printReport(w io.Writer, report *parameterservice.Report, ok bool) {
	if report == nil {
		fmt.Fprintln(w, failStyle.Render("FAILED")+" platform identity unavailable")
		return
	}

	status := okStyle.Render("OK")
	if !ok {
		status = failStyle.Render("FAILED")
	}

	fmt.Fprintf(w, "%s %s %s -> %s\n", status, report.Identity.Device, report.Identity.Build, report.Profile)
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  offsets matched: %d (min %d), system records: %d, cycle %s",
		report.OffsetCount, report.MinOffsets, report.SystemCount, report.CycleID)))
}

func export(stdout io.Writer, store *parameterservice.Store, format, outputPath string) error {
	data, err := parameterservice.Export(store, format)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = stdout.Write(data)
		return err
	}

	outputPath, err = path.ExpandPath(outputPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
