package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mthomas46/jirassic-pack-sub000/internal/model"
	"github.com/mthomas46/jirassic-pack-sub000/internal/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultLogFile = "jirassicpack.log"

var (
	cfgFile string
	logFile string
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "jplog",
	Short: "jplog: log analytics and anomaly detection",
	Long: `jplog analyzes structured JSON Lines application logs.
It filters by level, feature, correlation ID and time window, computes
time-bucketed and per-entity statistics, and flags anomalous periods or
features via z-score analysis. Results render in the terminal and export
to Markdown or JSON.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.jplog.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "f", "", "log file path or glob (default: "+defaultLogFile+")")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".jplog")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("log_file", defaultLogFile)
	viper.SetDefault("interval", "hour")
	viper.SetDefault("top_n", 5)
	viper.SetDefault("threshold", 2.0)
	viper.SetDefault("port", "8077")

	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// resolveLogFile applies flag > config file > default precedence.
func resolveLogFile() string {
	if logFile != "" {
		return logFile
	}
	return viper.GetString("log_file")
}

// loadEntries parses the configured log source. Glob patterns pick up
// rotated files; a missing source is reported, not fatal.
func loadEntries() ([]model.LogEntry, error) {
	path := resolveLogFile()

	var (
		entries []model.LogEntry
		diag    string
		err     error
	)
	if strings.ContainsAny(path, "*?[") {
		entries, diag, err = parser.ParseGlob(path)
	} else {
		entries, diag, err = parser.ParseFile(path)
	}
	if err != nil {
		return nil, err
	}
	if diag != "" {
		fmt.Fprintln(os.Stderr, diag)
	}
	return entries, nil
}
