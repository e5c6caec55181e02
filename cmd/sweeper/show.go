package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var (
		flags  boardFlags
		blank  string
		counts bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one random board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if utf8.RuneCountInString(blank) != 1 {
				return fmt.Errorf("blank must be a single character, got %q", blank)
			}
			r, _ := utf8.DecodeRuneInString(blank)

			s, err := flags.newSampler()
			if err != nil {
				return err
			}
			b, err := flags.newBoard(s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, b.StringGrid(r))
			if counts {
				fmt.Fprintln(out, "bombs: ", b.Bombs())
				fmt.Fprintln(out, "coords:", b.NeighborCoords())
				fmt.Fprintln(out, "counts:", b.NeighborCountValues())
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&blank, "blank", "_", "Glyph for cells without bombs around")
	cmd.Flags().BoolVar(&counts, "counts", false, "Also print the bomb and neighbour count lists")

	return cmd
}
