package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"etbench/adapters/excel"
	statsengine "etbench/adapters/stats/engine"
	"etbench/app"
	"etbench/domain/core"
	"etbench/domain/result"
	"etbench/internal/formulas"
	"etbench/internal/testkit"
	"etbench/ports"
)

func main() {
	// Optional .env for local overrides; absence is fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "etbench",
		Short: "Run and compare evapotranspiration formulas over shared forcing data",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newStatsCmd(),
		newListCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var workers int
	var demoDays int

	cmd := &cobra.Command{
		Use:   "run [forcing-file]",
		Short: "Run all runnable formulas against a forcing dataset",
		Long: `Run every registered formula whose required inputs are available in the
dataset. Accepts an .xlsx or .csv forcing file with a timestamp column
followed by variable columns; with no file, a synthetic demo dataset is used.

Example: etbench run forcing.csv --workers 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := runAll(cmd.Context(), sourceFor(args, demoDays), workers)
			if err != nil {
				return err
			}
			printRun(table)
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent formula executions (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&demoDays, "demo-days", 30, "Days of synthetic data when no file is given")

	return cmd
}

func newStatsCmd() *cobra.Command {
	var workers int
	var demoDays int

	cmd := &cobra.Command{
		Use:   "stats [forcing-file]",
		Short: "Run all formulas and print cross-formula statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := runAll(cmd.Context(), sourceFor(args, demoDays), workers)
			if err != nil {
				return err
			}
			printStats(table)
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent formula executions (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&demoDays, "demo-days", 30, "Days of synthetic data when no file is given")

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered formulas",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := formulas.DefaultRegistry()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFAMILY\tPARTITION\tREQUIRED")
			for _, spec := range registry.All() {
				required := make([]string, len(spec.Required))
				for i, key := range spec.Required {
					required[i] = string(key)
				}
				fmt.Fprintf(w, "%s\t%s\t%v\t%s\n",
					spec.Name, spec.Family, spec.SupportsPartition, strings.Join(required, ","))
			}
			return w.Flush()
		},
	}
}

func sourceFor(args []string, demoDays int) ports.ForcingSource {
	if len(args) == 1 {
		return excel.NewForcingReader(args[0])
	}
	cfg := testkit.DefaultSyntheticConfig()
	if demoDays > 0 {
		cfg.Days = demoDays
	}
	return testkit.Source{Config: cfg}
}

func runAll(ctx context.Context, source ports.ForcingSource, workers int) (*result.Table, error) {
	ds, err := source.Read()
	if err != nil {
		if core.IsDataError(err) {
			return nil, fmt.Errorf("forcing data is malformed: %w", err)
		}
		return nil, fmt.Errorf("loading forcing data: %w", err)
	}

	registry, err := formulas.DefaultRegistry()
	if err != nil {
		return nil, err
	}

	engine := app.NewEngine(registry, app.WithWorkers(workers))
	return engine.RunAll(ctx, ds)
}

func printRun(table *result.Table) {
	fmt.Printf("Run %s at %s: %d timesteps, %d formulas computed, %d skipped, %d failed\n\n",
		table.RunID, table.CreatedAt.Time().Format(time.RFC3339),
		table.Len(), len(table.Formulas()), len(table.Skipped), len(table.Failed))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FORMULA\tFAMILY\tMEAN (mm/day)\tCOMPONENTS\tWARNINGS")
	for _, name := range table.Formulas() {
		comp, _ := table.Result(name)
		mean := seriesMean(comp.Total)

		components := "-"
		if comp.Partitioned() {
			names := make([]string, 0, len(comp.Components))
			for c := range comp.Components {
				names = append(names, c)
			}
			sort.Strings(names)
			components = strings.Join(names, ",")
		}

		warnings := "-"
		if len(comp.Warnings) > 0 {
			warnings = fmt.Sprintf("%d", len(comp.Warnings))
		}
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%s\t%s\n", name, comp.Family, mean, components, warnings)
	}
	w.Flush()

	for _, skip := range table.Skipped {
		fmt.Printf("skipped %s: %s\n", skip.Formula, skip.Reason())
	}
	for _, failure := range table.Failed {
		fmt.Printf("failed %s: %s\n", failure.Formula, failure.Message)
	}
}

func printStats(table *result.Table) {
	engine := statsengine.NewStatsEngine()

	fmt.Println("Summary statistics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FORMULA\tN\tMEAN\tSTD\tCV\tMIN\tMEDIAN\tMAX")
	for _, s := range engine.Summary(table) {
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			s.Formula, s.Samples, s.Mean, s.StdDev, s.CV, s.Min, s.Median, s.Max)
	}
	w.Flush()

	fmt.Println("\nPearson correlation:")
	printMatrix(engine.CorrelationMatrix(table))

	fmt.Println("\nMean absolute difference (mm/day):")
	printMatrix(engine.DifferenceMatrix(table))
}

func printMatrix(m *statsengine.Matrix) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "\t%s\n", strings.Join(m.Names, "\t"))
	for i, name := range m.Names {
		cells := make([]string, m.Size())
		for j := 0; j < m.Size(); j++ {
			cells[j] = fmt.Sprintf("%.3f", m.At(i, j))
		}
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(cells, "\t"))
	}
	w.Flush()
}

func seriesMean(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
