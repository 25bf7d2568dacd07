// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/wavealign/sequence"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		length   int
		out      string
		seed     int64
		alphabet string
		name     string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random sequence for benchmarking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sequence.Generate(length,
				sequence.WithSeed(seed),
				sequence.WithAlphabet(alphabet),
				sequence.WithName(name),
			)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return sequence.Write(cmd.OutOrStdout(), s)
			}
			if err = sequence.WriteFile(out, s); err != nil {
				return err
			}
			a.logger.Info("sequence written",
				slog.String("path", out),
				slog.Int("length", length),
				slog.Int64("seed", seed),
			)

			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&length, "length", 0, "number of symbols")
	fl.StringVar(&out, "out", "-", "output file, - for stdout")
	fl.Int64Var(&seed, "seed", sequence.DefaultSeed, "random seed")
	fl.StringVar(&alphabet, "alphabet", sequence.DefaultAlphabet, "symbols to draw from")
	fl.StringVar(&name, "name", "", "FASTA record name; empty writes raw symbols")
	_ = cmd.MarkFlagRequired("length")

	return cmd
}
