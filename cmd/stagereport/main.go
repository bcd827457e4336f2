// Command stagereport runs the full report pipeline once: load the stage
// results table, derive the summary views, and write the figure artifacts and
// summary workbook.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/veloscope/stagereport/analysis"
	"github.com/veloscope/stagereport/dataset"
	"github.com/veloscope/stagereport/figures"
	"github.com/veloscope/stagereport/pkg/log"
	"github.com/veloscope/stagereport/report"
)

const topRiderCount = 10

var (
	dataPath    string
	outDir      string
	summaryPath string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:           "stagereport",
	Short:         "Generate the cycling stage-points report figures",
	Long:          "stagereport loads the stage results table, derives grouped summaries and a diagnostic regression, and writes the report figures as PNG files plus a summary workbook.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetupLogger(logLevel)
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&dataPath, "data", "cycling.txt", "path of the input stage results table")
	rootCmd.Flags().StringVar(&outDir, "out", "figures", "output directory for figure artifacts")
	rootCmd.Flags().StringVar(&summaryPath, "summary", "figures/summary.xlsx", "path of the summary workbook (empty to disable)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func run() error {
	ds, err := dataset.Load(dataPath)
	if err != nil {
		return err
	}
	slog.Info("loaded dataset", log.Path(dataPath), log.Rows(ds.Len()),
		log.Groups(len(ds.RiderClasses())*len(ds.StageClasses())))

	groups := analysis.GroupMeans(ds)
	grid := analysis.BoxGrid(ds)
	topRiders := analysis.TopRiders(ds, topRiderCount)
	model, err := analysis.FitInteraction(ds)
	if err != nil {
		return err
	}
	slog.Info("fitted interaction model", slog.Int("terms", len(model.Terms)), slog.Float64("r2", model.R2))

	rend := figures.NewRenderer(outDir)
	if err := rend.DatasetEntries(analysis.ClassEntries(ds)); err != nil {
		return err
	}
	if err := rend.StagePoints(analysis.StagePointTotals(ds)); err != nil {
		return err
	}
	if topRiders != nil {
		if err := rend.TopRiders(topRiders); err != nil {
			return err
		}
	}
	if err := rend.ClassMix(groups); err != nil {
		return err
	}
	if err := rend.PointsDensity(analysis.PointsByClass(ds), analysis.MaxPoints(ds)); err != nil {
		return err
	}
	if err := rend.StageBoxplots(grid, ds.RiderClasses()); err != nil {
		return err
	}
	if err := rend.Interactions(groups, grid); err != nil {
		return err
	}
	if err := rend.ResidualQQ(analysis.NormalQQ(model.Residuals)); err != nil {
		return err
	}
	if err := rend.ResidualScatter(model); err != nil {
		return err
	}

	if summaryPath != "" {
		if err := report.WriteWorkbook(summaryPath, groups, model, topRiders); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("report pipeline failed", log.ErrAttr(err))
		os.Exit(1)
	}
}
