package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/statement-ledger/internal/config"
	"github.com/example/statement-ledger/internal/convert"
	"github.com/example/statement-ledger/internal/extract"
	"github.com/example/statement-ledger/internal/logger"
)

const version = "v1.0.0"

var (
	configPath    string
	debug         bool
	statementYear int
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "statement-ledger <input.pdf> <output.ledger>",
	Short: "Convert CMB credit card statements into ledger entries",
	Long: `Statement Ledger reads a China Merchants Bank PDF statement, recognizes
its transaction lines, categorizes them with configurable rules and writes
double-entry ledger text sorted by date.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "statement-ledger", version)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to the configuration file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().IntVar(&statementYear, "year", 0, "statement year for MM/DD dates (default: read from the input file name)")
	rootCmd.AddCommand(versionCmd)
}

func run(cmd *cobra.Command, args []string) error {
	log := logger.New(debug)
	ctx := logger.WithContext(cmd.Context(), log)

	cfg, created, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("config", configPath).Msg("created default configuration")
	}

	c := &convert.Converter{Source: extract.PDF{}, Config: cfg}
	res, err := c.Convert(ctx, convert.Options{
		Input:         args[0],
		Output:        args[1],
		StatementYear: statementYear,
	})
	if err != nil {
		log.Error().Err(err).Msg("conversion failed")
		return err
	}

	log.Info().Int("transactions", res.Transactions).Str("output", res.Output).Msg("done")
	return nil
}
