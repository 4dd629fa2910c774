package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/domainaware/gcpdns/internal/clouddns"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "2.0.0"

var (
	credentialFile string
	project        string
	verbose        bool
	dryRun         bool
	defaultTTL     int64
)

var rootCmd = &cobra.Command{
	Use:     "gcpdns",
	Short:   "Manage zones and resource record sets on Google Cloud DNS",
	Long:    "gcpdns manages zones and resource record sets on Google Cloud DNS, with bulk CSV changesets and CSV/JSON dumps",
	Version: version,

	SilenceUsage: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

// setup builds the logger and the Cloud DNS provider shared by all
// subcommands.
func setup(ctx context.Context) (*zap.Logger, *clouddns.Provider, error) {
	logger := getLogger()

	if credentialFile == "" {
		logger.Error("No credential file configured. Set --credential-file or GCPDNS_CREDENTIAL_FILE.")
		return nil, nil, clouddns.ErrMissingCredentialFile
	}

	provider, err := clouddns.NewProvider(ctx,
		logger.With(zap.String("component", "clouddns")),
		clouddns.Config{
			CredentialFile: credentialFile,
			Project:        project,
			TTL:            defaultTTL,
			DryRun:         dryRun,
		},
	)
	if err != nil {
		logger.Error("Failed to initialize Cloud DNS provider", zap.Error(err))
		return nil, nil, err
	}

	return logger, provider, nil
}

// getLogger creates a new logger with the configured verbosity. Logs go to
// stderr; stdout is reserved for dump output.
func getLogger() *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        zapcore.OmitKey,
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      zapcore.OmitKey,
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}

// confirm prompts on stderr and reads a yes/no answer from stdin.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&credentialFile, "credential-file", "c", "", "Path to the GCP service account credential file")
	rootCmd.PersistentFlags().StringVar(&project, "project", "", "GCP project ID (defaults to the credential file's project)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "If true, only log the changes that would be made")
	rootCmd.PersistentFlags().Int64Var(&defaultTTL, "default-ttl", clouddns.DefaultTTL, "Default TTL (in seconds) for created record sets")

	rootCmd.AddCommand(zoneCmd)
	rootCmd.AddCommand(recordCmd)
}

func initConfig() {
	// Load environment variables from a .env file if one exists. This is
	// especially useful for local development.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env file")
	}

	viper.SetEnvPrefix("GCPDNS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Bind viper environment variables to flags
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			val := viper.Get(f.Name)
			if err := rootCmd.PersistentFlags().Set(f.Name, fmt.Sprint(val)); err != nil {
				log.Printf("Warning: Failed to set flag %s from environment variable: %v", f.Name, err)
			}
		}
	})
}
