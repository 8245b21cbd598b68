package main

import (
	"fmt"
	"io"
	"os"

	"frame-go/internal/app"
	"frame-go/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, creating or completing it from defaults.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults["config_path"], config.NewConfig(defaults["base_dir"], defaults["picture_dir"]))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", defaults["config_path"], err)
	}
	return cfg, nil
}

// newApp reads the config and creates a FrameApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "GetFileList", "Playlist").
func newApp(operation string) (*app.FrameApp, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewFrameApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// printPaths writes one path per line to w. On a terminal, a count follows on stderr.
func printPaths(w io.Writer, paths []string, noun string) {
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	if isTerminal(os.Stdout) {
		color.New(color.Faint).Fprintf(os.Stderr, "%d %s(s)\n", len(paths), noun)
	}
}

var rootCmd = &cobra.Command{
	Use:           "frame",
	Short:         "Photo frame file lister",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// list command
var listCmd = &cobra.Command{
	Use:   "list [FOLDER]",
	Short: "List files whose names match a pattern",
	Long: `List files in FOLDER whose base names match the --filter regular
expression, case-insensitively. FOLDER, --recursive and --time-filter
default to the configured values.

With --time-filter, each file is kept with probability 0.5^age, where age
is its approximate age in whole years, and never below 0.01.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetFileList")
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := a.Config()
		folder := cfg.ImageFolder
		if len(args) > 0 {
			folder = args[0]
		}
		filter := cfg.Filter
		if cmd.Flags().Changed("filter") {
			filter, _ = cmd.Flags().GetString("filter")
		}
		recursive := cfg.IncludeSubdirectories
		if cmd.Flags().Changed("recursive") {
			recursive, _ = cmd.Flags().GetBool("recursive")
		}
		timeFilter := cfg.TimeFilter
		if cmd.Flags().Changed("time-filter") {
			timeFilter, _ = cmd.Flags().GetBool("time-filter")
		}

		files, err := a.GetFileList(folder, filter, recursive, timeFilter)
		if err != nil {
			return err
		}

		printPaths(cmd.OutOrStdout(), files, "file")
		return nil
	},
}

// folders command
var foldersCmd = &cobra.Command{
	Use:   "folders [FOLDER]",
	Short: "List a folder and its subfolders",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListFolders")
		if err != nil {
			return err
		}
		defer a.Close()

		folder := a.Config().ImageFolder
		if len(args) > 0 {
			folder = args[0]
		}
		recursive := a.Config().IncludeSubdirectories
		if cmd.Flags().Changed("recursive") {
			recursive, _ = cmd.Flags().GetBool("recursive")
		}

		printPaths(cmd.OutOrStdout(), a.ListFolders(folder, recursive), "folder")
		return nil
	},
}

// playlist command
var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "List the configured folder in random order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Playlist")
		if err != nil {
			return err
		}
		defer a.Close()

		files, err := a.Playlist()
		if err != nil {
			return err
		}

		printPaths(cmd.OutOrStdout(), files, "file")
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"], defaults["picture_dir"])

		// Initialize config file
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Image Folder: %s\n", cfg.ImageFolder)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Read config without reconciling it, so the file is left as is
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", defaults["config_path"], err)
		}

		w := cmd.OutOrStdout()
		color.New(color.Bold).Fprintf(w, "Configuration from %s:\n\n", defaults["config_path"])
		fmt.Fprintf(w, "Image Folder:           %s\n", cfg.ImageFolder)
		fmt.Fprintf(w, "Seconds To Show:        %d\n", cfg.SecondsToShow)
		fmt.Fprintf(w, "Include Subdirectories: %t\n", cfg.IncludeSubdirectories)
		fmt.Fprintf(w, "Time Filter:            %t\n", cfg.TimeFilter)
		fmt.Fprintf(w, "Filter:                 %s\n", cfg.Filter)
		fmt.Fprintf(w, "Log Dir:                %s\n", cfg.LogDir)
		fmt.Fprintf(w, "Log Level:              %s\n", cfg.LogLevel)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("filter", "f", "", "Case-insensitive regular expression matched against file names")
	listCmd.Flags().BoolP("recursive", "r", false, "Recurse into subdirectories")
	listCmd.Flags().BoolP("time-filter", "t", false, "Make older files less likely to be listed")
	rootCmd.AddCommand(foldersCmd)
	foldersCmd.Flags().BoolP("recursive", "r", false, "Recurse into subdirectories")
	rootCmd.AddCommand(playlistCmd)
	rootCmd.AddCommand(configCmd)
}
