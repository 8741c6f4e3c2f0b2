// =============================================================================
// Boleto Utils - Root Command
// =============================================================================
//
// This file defines the root command of the CLI. Every other command is
// attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (boleto)
//   ├── info               (boleto info <codigo>)
//   ├── digito-verificador (boleto dv <codigo>)
//   ├── gerar              (boleto gerar --banco ...)
//   ├── lote               (boleto lote <arquivo>)
//   └── version            (boleto version)
//
// SETUP (PersistentPreRunE):
//   1. Load the configuration file (a missing default file is fine)
//   2. Build the zap logger
//   3. Load the bank and convênio directories
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/boleto-utils/internal/boleto"
	"github.com/ginjaninja78/boleto-utils/internal/config"
	"github.com/ginjaninja78/boleto-utils/internal/directory"
	"github.com/ginjaninja78/boleto-utils/internal/types"
)

// app is the state shared by the commands of one invocation.
type app struct {
	// Global flags.
	cfgFile       string
	verbose       bool
	bancosFile    string
	conveniosFile string

	cfg     *config.Config
	logger  *zap.Logger
	decoder *boleto.Decoder
}

// newRootCmd builds the command tree. A fresh tree per invocation keeps flag
// values from leaking between runs.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "boleto",
		Short: "Boleto Utils - Decode and validate Brazilian payment slips",
		Long: `Boleto Utils decodes and validates the barcodes and digitable lines of
Brazilian payment slips.

Supported slips:
  - Cobrança (bank collection): 44-digit barcode, 47-digit digitable line
  - Arrecadação (utilities and taxes): 44-digit barcode, 48-digit digitable line

Example Usage:
  boleto info 75691.43436 01033.723402 00149.330011 6 90380000250000
  boleto info --format json 81675555555555566667777777777777777777777777
  boleto dv 11190444455555555556666666666666666666666666
  boleto gerar --banco 1 --moeda real --valor 214.03 --vencimento 2022-05-10
  boleto lote codigos.csv --coluna 1`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&a.cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&a.verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
	rootCmd.PersistentFlags().StringVar(
		&a.bancosFile,
		"bancos",
		"",
		"CSV or XLSX table of bank names (default: embedded table)",
	)
	rootCmd.PersistentFlags().StringVar(
		&a.conveniosFile,
		"convenios",
		"",
		"CSV or XLSX table of convênio names (default: embedded table)",
	)

	rootCmd.AddCommand(
		newInfoCmd(a),
		newDigitoCmd(a),
		newGerarCmd(a),
		newLoteCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main().
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Erro: %v\n", err)
		return 1
	}
	return 0
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads configuration, logger and directories.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if cmd.Flags().Changed("config") {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadOptional(a.cfgFile)
	}
	if err != nil {
		return err
	}

	if a.bancosFile != "" {
		a.cfg.BancosFile = a.bancosFile
	}
	if a.conveniosFile != "" {
		a.cfg.ConveniosFile = a.conveniosFile
	}

	if a.logger, err = newLogger(a.cfg.LogLevel, a.verbose); err != nil {
		return err
	}

	bancos, convenios, err := loadDirectories(a.cfg)
	if err != nil {
		return err
	}
	a.decoder = boleto.NewDecoder(bancos, convenios, boleto.WithLogger(a.logger))

	a.logger.Debug("setup complete",
		zap.String("config", a.cfgFile),
		zap.String("bancos_file", a.cfg.BancosFile),
		zap.String("convenios_file", a.cfg.ConveniosFile))

	return nil
}

// newLogger builds a production logger writing JSON to stderr.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// loadDirectories returns the configured tables, falling back to the embedded
// ones.
func loadDirectories(cfg *config.Config) (types.BankDirectory, types.AgreementDirectory, error) {
	defaultBancos, defaultConvenios := directory.Default()

	var bancos types.BankDirectory = defaultBancos
	if cfg.BancosFile != "" {
		b, err := directory.LoadBancos(cfg.BancosFile)
		if err != nil {
			return nil, nil, err
		}
		bancos = b
	}

	var convenios types.AgreementDirectory = defaultConvenios
	if cfg.ConveniosFile != "" {
		c, err := directory.LoadConvenios(cfg.ConveniosFile)
		if err != nil {
			return nil, nil, err
		}
		convenios = c
	}

	return bancos, convenios, nil
}
