package showCommand

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	parameterservice "github.com/redjax/kparams/internal/services/parameterService"
	"github.com/redjax/kparams/internal/utils"
)

func NewProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "Show the offsets profiles and the device-family markers that select them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := utils.LoadCommandEnv(cmd)
			if err != nil {
				return err
			}

			resolver, err := env.Resolver()
			if err != nil {
				return err
			}

			renderProfiles(cmd.OutOrStdout(), resolver)
			return nil
		},
	}
}

func renderProfiles(w io.Writer, r *parameterservice.Resolver) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Profile", "Selected When"})

	if r.ForcedProfile != nil {
		t.AppendRow(table.Row{r.ForcedProfile.Name, "forced by resolver.profile"})
	}
	for _, rule := range r.Rules {
		quoted := make([]string, len(rule.Markers))
		for i, m := range rule.Markers {
			quoted[i] = `"` + m + `"`
		}
		t.AppendRow(table.Row{rule.Profile.Name, "device contains " + strings.Join(quoted, " or ")})
	}
	t.AppendRow(table.Row{r.DefaultProfile.Name, "no marker matches (default)"})

	t.Render()
}
