package showCommand

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	platformservice "github.com/redjax/kparams/internal/services/platformService"
	"github.com/redjax/kparams/internal/utils"
)

func NewPlatformCmd() *cobra.Command {
	var properties []string

	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Show the platform identity and host summary. You can pass multiple --property <propertyname> flags.",
		Long: `Show the device model and OS build used for parameter resolution,
followed by a summary of the host.

Available properties for --property:
  - device
  - build
  - os
  - arch
  - osrelease (alias: release)
  - kernel
  - cpumodel
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := utils.LoadCommandEnv(cmd)
			if err != nil {
				return err
			}

			info, err := platformservice.GatherPlatformInfo(cmd.Context(), env.Provider)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(properties) == 0 {
				fmt.Fprint(out, info.Format())
				return nil
			}

			for _, prop := range properties {
				switch strings.ToLower(prop) {
				case "device":
					fmt.Fprintf(out, "device: %s\n", info.Identity.Device)
				case "build":
					fmt.Fprintf(out, "build: %s\n", info.Identity.Build)
				case "os":
					fmt.Fprintf(out, "os: %s\n", info.OS)
				case "arch":
					fmt.Fprintf(out, "arch: %s\n", info.Arch)
				case "osrelease", "release":
					fmt.Fprintf(out, "osrelease: %s\n", info.OSRelease)
				case "kernel":
					fmt.Fprintf(out, "kernel: %s\n", info.KernelVersion)
				case "cpumodel":
					fmt.Fprintf(out, "cpumodel: %s\n", info.CPUModel)
				default:
					fmt.Fprintf(out, "Unknown property: %s\n", prop)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&properties, "property", nil, "Show only specific properties (can be repeated)")
	return cmd
}
