package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"pathctl/pkg/config"
	"pathctl/pkg/errors"
	"pathctl/pkg/pathutil"
	"pathctl/pkg/types"
)

var (
	Version   string
	BuildDate string
	GoVersion string
	Stream    string
)

// setupFileLogger configures the file logger
func setupFileLogger(logPath string, lvl zerolog.Level) error {
	dir := filepath.Dir(logPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to create log directory")
		}
	}
	fileWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    20, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	log.Logger = zerolog.New(fileWriter).Level(lvl).With().
		Timestamp().
		Str("Version", Version).
		Str("Stream", Stream).
		Logger()
	return nil
}

// parseLogLevel converts string to zerolog level
func parseLogLevel(s string) zerolog.Level {
	if s == "" {
		if env := os.Getenv("LOG_LEVEL"); env != "" {
			s = env
		} else {
			return zerolog.InfoLevel
		}
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "0":
		return zerolog.TraceLevel
	case "debug", "1":
		return zerolog.DebugLevel
	case "info", "2":
		return zerolog.InfoLevel
	case "warn", "warning", "3":
		return zerolog.WarnLevel
	case "error", "4":
		return zerolog.ErrorLevel
	case "fatal", "5":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pathctl",
		Short: "File-system path utility",
		Long: `A tool to check, create and delete file-system paths, apply batch
manifests, and generate reports.

Examples:

  # Check whether paths exist as files or directories
  pathctl exists a/b/c.txt a/b

  # Create a file with content, creating parent directories
  pathctl touch --data "hello" a/b/c.txt

  # Apply manifests in parallel
  pathctl apply --max-parallel 4 setup.txt teardown.txt

  # Show all available environment variables
  pathctl --env-info

Run 'pathctl --help' for a full list of options.
`,
		Version: fmt.Sprintf(`
Version: %s
Stream: %s
Build Date: %s
Go Version: %s`, Version, Stream, BuildDate, GoVersion),
		RunE: func(cmd *cobra.Command, args []string) error {
			if envInfo, _ := cmd.Flags().GetBool("env-info"); envInfo {
				printEnvInfo()
				return nil
			}
			return cmd.Help()
		},
	}

	cmd.SilenceUsage = true
	setupFlags(cmd)
	bindFlags(cmd)

	cmd.AddCommand(newExistsCmd())
	cmd.AddCommand(newTouchCmd())
	cmd.AddCommand(newRmCmd())
	cmd.AddCommand(newMkdirCmd())
	cmd.AddCommand(newApplyCmd())

	return cmd
}

// setupFlags defines all command line flags
func setupFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("env-info", false, "Display possible environment variables and their current values")
	cmd.PersistentFlags().String("config", "", "Config file path (yaml/json)")
	cmd.PersistentFlags().Int("max-parallel", 4, "Max manifests applied concurrently")
	cmd.PersistentFlags().Bool("force", false, "Skip delete confirmations")
	cmd.PersistentFlags().String("outputs", "html", "Comma-separated report outputs: csv,json,html")
	cmd.PersistentFlags().String("output-dir", "reports", "Directory for generated reports")
	cmd.PersistentFlags().String("log-file", "logs/pathctl.log", "Path to log file (rotated)")
	cmd.PersistentFlags().String("log-level", "", "Log level (trace/debug/info/warn/error or 0..5)")
	cmd.PersistentFlags().Bool("metrics-enabled", false, "Enable Prometheus metrics export after apply")
	cmd.PersistentFlags().String("metrics-file", "metrics.prom", "Path to Prometheus metrics file")
}

// bindFlags binds command line flags to viper
func bindFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("max-parallel", cmd.PersistentFlags().Lookup("max-parallel"))
	_ = viper.BindPFlag("force", cmd.PersistentFlags().Lookup("force"))
	_ = viper.BindPFlag("outputs", cmd.PersistentFlags().Lookup("outputs"))
	_ = viper.BindPFlag("output-dir", cmd.PersistentFlags().Lookup("output-dir"))
	_ = viper.BindPFlag("log-file", cmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("metrics-enabled", cmd.PersistentFlags().Lookup("metrics-enabled"))
	_ = viper.BindPFlag("metrics-file", cmd.PersistentFlags().Lookup("metrics-file"))
}

// setup loads configuration and wires the logger and path layer
func setup() (*config.Config, *pathutil.PathUtil, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeConfig, "configuration validation failed")
	}

	lvl := parseLogLevel(cfg.LogLevel)
	if err := setupFileLogger(cfg.LogFile, lvl); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to setup logger")
	}

	return cfg, pathutil.New(types.OSFS{}), nil
}

// printEnvInfo prints environment variable information
func printEnvInfo() {
	fmt.Println("Possible Environment Variables (prefix: PATHCTL_) and Current Values:")
	envKeys := []string{
		"MAX_PARALLEL",
		"FORCE",
		"OUTPUTS",
		"OUTPUT_DIR",
		"LOG_FILE",
		"LOG_LEVEL",
		"METRICS_ENABLED",
		"METRICS_FILE",
	}
	for _, key := range envKeys {
		envVar := "PATHCTL_" + key
		val := os.Getenv(envVar)
		if val != "" {
			fmt.Printf("%s = %s\n", envVar, val)
		} else {
			fmt.Printf("%s = (not set)\n", envVar)
		}
	}
}

// newExistsCmd reports presence of each path
func newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <path>...",
		Short: "Report whether paths exist as files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pu, err := setup()
			if err != nil {
				return err
			}

			var missing []string
			for _, path := range args {
				switch {
				case pu.ExistsAsFile(path):
					fmt.Printf("%s: file\n", path)
				case pu.ExistsAsDirectory(path):
					fmt.Printf("%s: directory\n", path)
				default:
					fmt.Printf("%s: absent\n", path)
					missing = append(missing, path)
				}
			}
			log.Info().Strs("paths", args).Strs("missing", missing).Msg("exists check")

			if len(missing) > 0 {
				return errors.ValidationErrorf("missing paths: %v", missing)
			}
			return nil
		},
	}
}

// newTouchCmd creates files, building the parent chain as needed
func newTouchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "touch <path>...",
		Short: "Create files with optional content, creating parent directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pu, err := setup()
			if err != nil {
				return err
			}

			dataStr, _ := cmd.Flags().GetString("data")
			dataFile, _ := cmd.Flags().GetString("data-file")
			if dataStr != "" && dataFile != "" {
				return errors.ValidationError("--data and --data-file are mutually exclusive")
			}
			data := []byte(dataStr)
			if dataFile != "" {
				data, err = os.ReadFile(dataFile)
				if err != nil {
					return errors.Wrap(err, errors.ErrorTypeFile, "failed to read data file")
				}
			}

			var failed []string
			for _, path := range args {
				ok, err := pu.CreateFile(path, data)
				if err != nil {
					log.Error().Str("path", path).Err(err).Msg("create containing directory failed")
					return errors.Wrap(err, errors.ErrorTypeFile, "failed to create containing directory")
				}
				if !ok {
					// The primitive only reports failure as a bool; surface it
					// as a failed op rather than guessing at a cause.
					log.Warn().Str("path", path).Msg("file creation reported failure")
					failed = append(failed, path)
					continue
				}
				log.Info().Str("path", path).Int("bytes", len(data)).Msg("file created")
			}

			if len(failed) > 0 {
				return errors.FileErrorf("file creation failed for: %v", failed)
			}
			return nil
		},
	}
	cmd.Flags().String("data", "", "Content to write into each file")
	cmd.Flags().String("data-file", "", "Read content from a file")
	return cmd
}

// newRmCmd deletes paths after confirmation
func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>...",
		Short: "Delete paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, pu, err := setup()
			if err != nil {
				return err
			}

			if !cfg.Force {
				ok, err := confirmDelete(args)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted")
					return nil
				}
			}

			var failed []string
			for _, path := range args {
				if err := pu.Delete(path); err != nil {
					log.Error().Str("path", path).Err(err).Msg("delete failed")
					failed = append(failed, path)
					continue
				}
				log.Info().Str("path", path).Msg("deleted")
			}

			if len(failed) > 0 {
				return errors.FileErrorf("delete failed for: %v", failed)
			}
			return nil
		},
	}
}

// confirmDelete prompts on a terminal; non-interactive input requires --force
func confirmDelete(paths []string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.ValidationError("refusing to delete without --force on non-interactive input")
	}
	fmt.Printf("Delete %d path(s)? [y/N]: ", len(paths))
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, errors.Wrap(err, errors.ErrorTypeValidation, "failed to read confirmation")
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// newMkdirCmd ensures directories exist
func newMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <path>...",
		Short: "Create directories, including intermediates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pu, err := setup()
			if err != nil {
				return err
			}

			for _, path := range args {
				if err := pu.CreateDirectory(path); err != nil {
					log.Error().Str("path", path).Err(err).Msg("mkdir failed")
					return errors.Wrap(err, errors.ErrorTypeFile, "failed to create directory")
				}
				log.Info().Str("path", path).Msg("directory created")
			}
			return nil
		},
	}
}
