package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/photostamp/internal/stamp"
	"github.com/Nomadcxx/photostamp/internal/ui"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"

	cfgFile      string
	verbose      bool
	dryRun       bool
	noColor      bool
	birthDate    string
	outputDir    string
	exifFallback bool
	noOverwrite  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "photostamp",
		Short: "Stamp baby ages and timestamps onto photos",
		Long: `Photostamp reads the date embedded in each photo's filename and draws
a label onto a copy of the photo in an output folder.

Two labels are available:
  - age:       months and days since a configured birth date, centered at
               the bottom ("3个月12天")
  - timestamp: the date itself ("2022.09.21"), bottom-right corner

Recognized filename dates: delimited (2022.09.21, 2022-09-21, 2022_09_21)
and contiguous (IMG_xxx20250904).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/photostamp/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "preview labels without writing files")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newAgeCmd())
	rootCmd.AddCommand(newTimestampCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newAgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "age [directory]",
		Short: "Stamp baby-age labels onto photos",
		Long: `Stamp each photo with the baby's age on the photo's date, measured
against the configured birth date.

Examples:
  photostamp age ~/Pictures/baby
  photostamp age --birth-date 2025-09-02 .
  photostamp age --dry-run ~/Pictures/baby`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(argDir(args), modeAge)
		},
	}

	addBatchFlags(cmd)
	return cmd
}

func newTimestampCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timestamp [directory]",
		Short: "Stamp date labels onto photos",
		Long: `Stamp each photo's extracted date ("YYYY.MM.DD") into its bottom-right
corner.

Examples:
  photostamp timestamp ~/Pictures/trip
  photostamp timestamp --output /tmp/stamped ~/Pictures/trip`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(argDir(args), modeTimestamp)
		},
	}

	addBatchFlags(cmd)
	return cmd
}

func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&birthDate, "birth-date", "b", "", "birth date YYYY-MM-DD (overrides config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default: <directory>/output)")
	cmd.Flags().BoolVar(&exifFallback, "exif-fallback", false, "use the EXIF capture date when the filename has none")
	cmd.Flags().BoolVar(&noOverwrite, "no-overwrite", false, "skip photos already present in the output directory")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("photostamp %s\n", version)
		},
	}
}

// argDir returns the directory argument, defaulting to the current dir.
func argDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

type mode int

const (
	modeAge mode = iota
	modeTimestamp
)

func (m mode) position() stamp.Position {
	if m == modeTimestamp {
		return stamp.PositionBottomRight
	}
	return stamp.PositionBottomCenter
}
