package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"atlas/internal/charts"
	"atlas/internal/config"
	"atlas/internal/loader"
	"atlas/internal/tui"
)

var (
	cfgFile string
	dataDir string
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "atlas [chart]",
	Short: "Interactive maps in the terminal",
	Long: `atlas draws five interactive maps with braille characters: world cities,
a hex grid of Canadian wolves, the 2016 US election by county and US power
plants on one map or as small multiples. Hover, click and search regions
with the mouse and keyboard.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: charts.IDs(),
	RunE:      runUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "atlas.yml", "config file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the input files")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	exitOnError(err)
	if len(args) == 1 {
		cfg.DefaultChart = args[0]
	}
	exitOnError(cfg.Validate())
	if _, ok := charts.Lookup(cfg.DefaultChart); !ok {
		exitOnError(fmt.Errorf("unknown chart %q, want one of %s", cfg.DefaultChart, strings.Join(charts.IDs(), ", ")))
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "atlas")
		exitOnError(err)
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := tui.New(cfg, loader.New(cfg.DataDir))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Printf("failed on %v", err)
		return err
	}
	return nil
}
