package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/ssgo/internal/config"
	"github.com/rgehrsitz/ssgo/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "ssgo %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "ssgo",
	Short: "Social Security benefit projection CLI",
	Long:  "Projects U.S. Social Security retirement benefits from a worker's earnings history and configurable wage/inflation projections",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate projected benefits for the configured workers",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		_, workers, err := config.BuildEngine(session)
		if err != nil {
			log.Fatal(err)
		}

		at, _ := cmd.Flags().GetString("at")
		year, month, err := parseYearMonth(at)
		if err != nil {
			log.Fatal(err)
		}

		for _, w := range workers {
			fmt.Println(output.FormatWorkerReport(w, year, month))
		}
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables [input-file]",
	Short: "Dump the derived max-wage, AWI and COLA series",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		engine, _, err := config.BuildEngine(session)
		if err != nil {
			log.Fatal(err)
		}

		from, _ := cmd.Flags().GetInt("from")
		to, _ := cmd.Flags().GetInt("to")
		if from == 0 {
			from = engine.CurrentYear() - 10
		}
		if to == 0 {
			to = engine.CurrentYear() + 20
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "csv":
			fmt.Print(output.FormatSeriesCSV(engine, from, to))
		case "table", "":
			fmt.Print(output.FormatSeriesTable(engine, from, to))
		default:
			log.Fatalf("unknown format %q (want table or csv)", format)
		}
	},
}

// parseYearMonth parses a YYYY-MM flag value. Empty means "first month of
// collection", signalled by a zero year.
func parseYearMonth(s string) (int, int, error) {
	if s == "" {
		return 0, 0, nil
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --at value %q (want YYYY-MM)", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --at year %q: %w", parts[0], err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --at month %q: %w", parts[1], err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid --at month %d", month)
	}
	return year, month, nil
}

func init() {
	calculateCmd.Flags().String("at", "", "benefit month as YYYY-MM (default: first month of collection)")
	tablesCmd.Flags().Int("from", 0, "first year to print")
	tablesCmd.Flags().Int("to", 0, "last year to print")
	tablesCmd.Flags().String("format", "table", "output format: table or csv")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
