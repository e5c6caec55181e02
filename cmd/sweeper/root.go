package main

import (
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/mines"
)

var log = logrus.New()

func setupLogging() error {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)

	if config.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if path, ok := config.LogFile(); ok {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   path,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return err
		}
		log.AddHook(hook)
	}

	mines.Log = log
	return nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sweeper",
		Short: "Minesweeper board engine and game server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenCmd())
	rootCmd.AddCommand(newShowCmd())

	return rootCmd
}

// boardFlags are shared by the commands that generate boards locally.
type boardFlags struct {
	rows    int
	cols    int
	bombs   int
	sampler string
}

func (f *boardFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.rows, "rows", "r", 9, "Number of rows")
	cmd.Flags().IntVarP(&f.cols, "cols", "c", 9, "Number of columns")
	cmd.Flags().IntVarP(&f.bombs, "bombs", "b", 10, "Number of bombs")
	cmd.Flags().StringVar(&f.sampler, "sampler", mines.SamplerShuffle, "Bomb placement: shuffle or selection")
}

func (f *boardFlags) newBoard(s mines.Sampler) (*mines.Board, error) {
	return mines.NewBoard(f.rows, f.cols, f.bombs, s)
}

func (f *boardFlags) newSampler() (mines.Sampler, error) {
	return mines.ParseSampler(f.sampler, mines.NewRand())
}
