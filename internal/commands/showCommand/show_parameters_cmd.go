package showCommand

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	parameterservice "github.com/redjax/kparams/internal/services/parameterService"
	"github.com/redjax/kparams/internal/utils"
	convert "github.com/redjax/kparams/internal/utils/convert"
	"github.com/redjax/kparams/internal/utils/strutils"
)

func NewParametersCmd() *cobra.Command {
	var kinds []string

	cmd := &cobra.Command{
		Use:     "parameters",
		Aliases: []string{"params"},
		Short:   "Resolve and print the parameter table for this platform.",
		Long: `Resolve parameters for the detected (or overridden) platform and print them.

Filter with --kind (repeatable): offsets, sizes, block_sizes, count_per_block, addresses, constants.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseKinds(kinds)
			if err != nil {
				return err
			}

			env, err := utils.LoadCommandEnv(cmd)
			if err != nil {
				return err
			}

			resolver, err := env.Resolver()
			if err != nil {
				return err
			}
			if !resolver.Init(cmd.Context()) {
				return resolver.Err()
			}

			renderParameters(cmd.OutOrStdout(), resolver.Store(), filter)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Only show parameters of this kind (can be repeated)")
	return cmd
}

func parseKinds(names []string) (map[parameterservice.Kind]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}

	filter := make(map[parameterservice.Kind]bool, len(names))
	for _, name := range names {
		kind := parameterservice.Kind(strings.ToLower(name))
		known := false
		for _, k := range parameterservice.Kinds {
			if k == kind {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown parameter kind %q", name)
		}
		filter[kind] = true
	}
	return filter, nil
}

// renderParameters prints the store as a table. A nil filter shows every kind.
func renderParameters(w io.Writer, store *parameterservice.Store, filter map[parameterservice.Kind]bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "Name", "Hex", "Decimal", "Bytes"})

	for _, e := range store.Entries() {
		if filter != nil && !filter[e.Key.Kind] {
			continue
		}

		name := e.Key.Field
		switch {
		case e.Key.Struct != "" && e.Key.Field != "":
			name = e.Key.Struct + "." + e.Key.Field
		case e.Key.Struct != "":
			name = e.Key.Struct
		}

		human := ""
		if e.Key.Kind == parameterservice.KindSize || e.Key.Kind == parameterservice.KindBlockSize {
			human = convert.BytesToHumanReadable(e.Value)
		}

		t.AppendRow(table.Row{
			kindTitle(e.Key.Kind),
			name,
			fmt.Sprintf("%#x", e.Value),
			e.Value,
			human,
		})
	}

	t.Render()
}

// kindTitle turns "count_per_block" into "Count Per Block".
func kindTitle(k parameterservice.Kind) string {
	return strutils.ToTitleCase(strings.ReplaceAll(string(k), "_", " "))
}
