package nuhxboard

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dasdy/nuhxboard/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var logCtx = logging.PackageCtx("cmd")

var (
	settingsFile         string
	configPath           string
	stylePath            string
	logLevel             string
	fontSizeFollowsState bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nuhxboard",
	Short: "Draw your keyboard live as you type",
	Long: `nuhxboard draws a keyboard layout and highlights the keys that are held down.
The layout and its colors come from two JSON documents; key presses come from
xinput, stdin or a ZMK keyboard's serial log. The board is shown in a browser
or directly in the terminal.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settingsFile, "settings", "", "settings file (default is $HOME/.nuhxboard.toml)")
	flags.StringVarP(&configPath, "config-path", "c", "keyboard.json", "Path to the layout document")
	flags.StringVarP(&stylePath, "style-path", "s", "style.json", "Path to the style document")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.BoolVar(&fontSizeFollowsState, "font-size-follows-state", false,
		"Take the font size from the pressed style of pressed keys instead of always using the loose one")
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.WarnContext(logCtx, "Could not load .env file", "error", err)
	}

	if settingsFile != "" {
		viper.SetConfigFile(settingsFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory and the working directory with name ".nuhxboard" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName(".nuhxboard")
	}

	viper.SetEnvPrefix("nuhxboard")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			slog.ErrorContext(logCtx, "Error reading settings file", "error", err)
			os.Exit(1)
		}

		slog.DebugContext(logCtx, "No settings file found, using flags and environment only")
	} else {
		slog.DebugContext(logCtx, "Using settings file", "path", viper.ConfigFileUsed())
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	slog.SetDefault(logging.NewLogger(os.Stderr, level))

	return nil
}

// set values to the PFlag variables from config, if they are set. Priority is still given to explicitly provided CLI flags.
func bindFlags(cmd *cobra.Command) error {
	var bindErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || bindErr != nil {
			return
		}

		// Both "style-path" and camelCased "stylePath" are accepted; viper compares keys case-insensitively.
		for _, configName := range []string{f.Name, strings.ReplaceAll(f.Name, "-", "")} {
			if !viper.IsSet(configName) {
				continue
			}

			val := viper.Get(configName)

			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				bindErr = fmt.Errorf("could not set flag %s from config: %w", f.Name, err)

				return
			}

			slog.DebugContext(logCtx, "Flag set from config", "flag", f.Name, "value", val)

			return
		}
	})

	return bindErr
}
