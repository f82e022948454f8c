package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/logflow/internal/cleaning"
)

func newRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect cleaning rule files",
	}
	cmd.AddCommand(newRulesValidateCommand(), newRulesDefaultsCommand())
	return cmd
}

func newRulesValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a rules file and list the rules it defines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := cleaning.LoadFile(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRIORITY\tNAME\tTYPE\tACTIVE")
			for _, d := range rs.Sorted() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", d.Priority, d.Name, d.Rule.Kind(), d.Active)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules OK\n", args[0], len(rs))
			return nil
		},
	}
}

func newRulesDefaultsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in rules as a rules file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := cleaning.Marshal(cleaning.DefaultRules(), cleaning.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "output format: toml or yaml")
	return cmd
}
