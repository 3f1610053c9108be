package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

const (
	formatJSON = "json"
	formatText = "text"
)

var errUsage = errors.New("usage")

func main() {
	logrus.SetOutput(os.Stderr)

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Warn("Configuração inválida, usando valores padrão do relatório")
		cfg = &config.Config{Report: config.DefaultReport()}
	}

	if err := run(context.Background(), os.Args[1:], cfg.Report, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, cfg config.Report, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("report", flag.ContinueOnError)
	flags.SetOutput(stderr)

	source := flags.String("file", "", "Path or http(s) URL of the sales data (.csv or .xlsx, required)")
	outDir := flags.String("out", "", "Directory to write RegionChart.png and ProductChart.png")
	format := flags.String("format", formatJSON, "Output format: json, text")
	quiet := flags.Bool("quiet", false, "Only log errors")

	flags.Usage = func() {
		fmt.Fprintf(stderr, `Sales report generator

Usage:
  report -file sales.csv
  report -file sales.xlsx -format text -out ./charts

Flags:
`)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return errUsage
	}

	if *source == "" {
		fmt.Fprintln(stderr, "Error: -file is required")
		flags.Usage()
		return errUsage
	}
	if *format != formatJSON && *format != formatText {
		fmt.Fprintf(stderr, "Error: unknown format %q\n", *format)
		return errUsage
	}
	if *quiet {
		logrus.SetLevel(logrus.ErrorLevel)
	}

	report, err := reporting.NewPipeline(cfg).RunSource(ctx, *source)
	if err != nil {
		return err
	}

	if *outDir != "" {
		if err := writeCharts(*outDir, report.Charts); err != nil {
			return err
		}
	}

	switch *format {
	case formatText:
		printText(stdout, report)
	default:
		fmt.Fprintln(stdout, utils.PrettyJson(report))
	}

	return nil
}

func writeCharts(dir string, charts domain.ChartBundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for name, encoded := range charts {
		image, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}

		path := filepath.Join(dir, name+".png")
		if err := os.WriteFile(path, image, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return nil
}

func printText(w io.Writer, report *domain.Report) {
	fmt.Fprintf(w, "Source:          %s (%d records)\n", report.Source, report.RecordCount)
	fmt.Fprintf(w, "Total sales:     %s\n", report.KPIs.TotalSales)
	fmt.Fprintf(w, "Average profit:  %s\n", report.KPIs.AverageProfit)
	fmt.Fprintf(w, "Sales growth:    %s\n", report.KPIs.GrowthText)

	names := make([]string, 0, len(report.Charts))
	for name := range report.Charts {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "Charts:          %v\n\n", names)

	fmt.Fprintln(w, report.Insight)
	fmt.Fprintln(w)
	fmt.Fprintln(w, report.Message)
}
