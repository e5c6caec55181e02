package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-core/internal/mines"
)

func newGenCmd() *cobra.Command {
	var (
		flags  boardFlags
		count  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate random boards in fixture format",
		Long: `Generate random boards and write them as fixture blocks, one block per
board, separated by empty lines. The output can be read back as test data.

Examples:
  sweeper gen -n 5 --rows 4 --cols 5 --bombs 3
  sweeper gen -n 100 --sampler selection -o testdata/random.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("number of boards must not be negative, got %d", count)
			}
			s, err := flags.newSampler()
			if err != nil {
				return err
			}

			boards := make([]*mines.Board, 0, count)
			for range count {
				b, err := flags.newBoard(s)
				if err != nil {
					return err
				}
				boards = append(boards, b)
			}

			header := fmt.Sprintf("; %d boards %dx%d, %d bombs, %s sampler",
				count, flags.rows, flags.cols, flags.bombs, flags.sampler)

			if output == "" {
				if err := writeFixtures(cmd.OutOrStdout(), header, boards); err != nil {
					return err
				}
			} else {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("unable to create %s: %w", output, err)
				}
				if err := writeFixturesAndClose(f, header, boards); err != nil {
					return fmt.Errorf("unable to write %s: %w", output, err)
				}
			}

			log.WithField("boards", count).Debug("generated fixtures")
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&count, "number", "n", 1, "Number of boards to generate")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func writeFixtures(w io.Writer, header string, boards []*mines.Board) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n\n", header); err != nil {
		return err
	}
	if err := mines.WriteFixtures(bw, boards...); err != nil {
		return err
	}
	return bw.Flush()
}

// writeFixturesAndClose always closes wc and reports a failed Close even
// when every write went through.
func writeFixturesAndClose(wc io.WriteCloser, header string, boards []*mines.Board) error {
	err := writeFixtures(wc, header, boards)
	return errors.Join(err, wc.Close())
}
