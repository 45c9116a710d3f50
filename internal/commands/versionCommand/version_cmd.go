package versioncommand

import (
	"fmt"

	"github.com/redjax/kparams/internal/version"
	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	var showInfo bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print CLI's version",
		Run: func(cmd *cobra.Command, args []string) {
			pkgInfo := version.GetPackageInfo()

			fmt.Fprintf(cmd.OutOrStdout(), "package: %s version:%s commit:%s date:%s\n",
				pkgInfo.PackageName,
				pkgInfo.PackageVersion,
				pkgInfo.PackageCommit,
				pkgInfo.PackageReleaseDate,
			)
			if showInfo {
				fmt.Fprintf(cmd.OutOrStdout(), "Owner: %s\nRepository Name: %s\nRepository URL: %s\n",
					pkgInfo.RepoUser, pkgInfo.RepoName, pkgInfo.RepoUrl)
			}
		},
	}

	cmd.Flags().BoolVar(&showInfo, "info", false, "Also show repository information")

	return cmd
}
