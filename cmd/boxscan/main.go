// Command boxscan scans a phone box photo, classifies every slot and
// reconciles the result against a student roster.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"phonebox-scanner/internal/baseline"
	"phonebox-scanner/internal/boxspec"
	"phonebox-scanner/internal/config"
	"phonebox-scanner/internal/grid"
	"phonebox-scanner/internal/imgio"
	"phonebox-scanner/internal/reconcile"
	"phonebox-scanner/internal/report"
	"phonebox-scanner/internal/roster"
	"phonebox-scanner/internal/scan"
	"phonebox-scanner/internal/slotid"
	"phonebox-scanner/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Config file (YAML, also via BOXSCAN_CONFIG)")
	imagePath := flag.String("image", "", "Path to box photo (PNG, JPEG, GIF, TIFF, BMP or WebP)")
	boxSel := flag.String("box", "", "Box selector (e.g. 10F or SM2) or a layout JSON file")
	rosterPath := flag.String("roster", "", "Roster CSV path")
	baselinePath := flag.String("baselines", "", "Baseline store path (default: per-user config dir)")
	cropArg := flag.String("crop", "", "Crop as top,left,right,bottom percentages (default: layout crop)")
	darkMin := flag.Float64("dark-min", 0, "Presence threshold on the dark pixel ratio (0-1)")
	satMin := flag.Float64("sat-min", 0, "Presence threshold on average saturation (0-1)")
	output := flag.String("o", "", "Write the results as CSV to this file")
	jsonOut := flag.Bool("json", false, "Print the full result as JSON instead of a table")
	logLevel := flag.String("log-level", "", "Log verbosity: debug, info, warn or error")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println("boxscan " + version.String())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags set on the command line beat both the config file and the
	// environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "box":
			cfg.Box = *boxSel
		case "roster":
			cfg.RosterPath = *rosterPath
		case "baselines":
			cfg.BaselinePath = *baselinePath
		case "dark-min":
			cfg.MinDarkRatio = *darkMin
		case "sat-min":
			cfg.MinSaturation = *satMin
		case "o":
			cfg.Output = *output
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if *cropArg != "" {
		crop, err := parseCrop(*cropArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -crop: %v\n", err)
			os.Exit(1)
		}
		cfg.Crop = crop
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *imagePath == "" || cfg.Box == "" {
		usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	layout, err := resolveLayout(cfg.Box)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve box %q: %v\n", cfg.Box, err)
		if errors.Is(err, boxspec.ErrUnknownBox) {
			fmt.Fprintln(os.Stderr, "Registered boxes:")
			for _, l := range boxspec.List() {
				fmt.Fprintf(os.Stderr, "  %-4s %s, %dx%d slots\n", l.Code, l.Name, l.Rows, l.Cols)
			}
			fmt.Fprintln(os.Stderr, "Grade boxes use a grade plus letter selector, e.g. 10F.")
		}
		os.Exit(1)
	}

	img, format, err := imgio.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	if !*jsonOut {
		fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())
		fmt.Printf("Box: %s, %dx%d slots\n", layout.Name, layout.Rows, layout.Cols)
	}

	crop := layout.DefaultCrop
	if cfg.CropSet() {
		crop = cfg.Crop
	}

	var entries []roster.Entry
	if cfg.RosterPath != "" {
		entries, err = roster.LoadCSV(cfg.RosterPath, roster.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load roster: %v\n", err)
			os.Exit(1)
		}
		if !*jsonOut {
			fmt.Printf("Roster: %d students\n", len(entries))
		}
	}

	storePath := cfg.BaselinePath
	if storePath == "" {
		storePath, err = baseline.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve baseline path: %v\n", err)
			os.Exit(1)
		}
	}

	scanner, err := scan.New(baseline.NewFileStore(storePath), scan.WithLogger(logger), scan.WithRoster(entries))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize scanner: %v\n", err)
		os.Exit(1)
	}

	result, err := scanner.Scan(img, crop, layout, cfg.Thresholds())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		os.Exit(1)
	}

	if cfg.Output != "" {
		if err := writeCSVFile(cfg.Output, result.Rows); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write CSV: %v\n", err)
			os.Exit(1)
		}
		if !*jsonOut {
			fmt.Printf("Results written to %s\n", cfg.Output)
		}
	}

	if *jsonOut {
		if err := report.WriteJSON(os.Stdout, result); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println()
	report.WriteTable(os.Stdout, result.Rows)
	printSummary(result)
}

func printSummary(result *scan.Result) {
	sum := result.Summary
	fmt.Printf("\nScan %s\n", result.ScanID)
	fmt.Printf("Slots: %d, present: %d\n", sum.Slots, sum.Present)
	fmt.Printf("  turned in:  %d\n", sum.TurnedIn)
	fmt.Printf("  missing:    %d\n", sum.Missing)
	fmt.Printf("  suspicious: %d\n", sum.Suspicious)
	fmt.Printf("  unassigned: %d\n", sum.Unassigned)
	fmt.Printf("Dark ratio: mean %.3f, stddev %.3f, median %.3f\n",
		sum.MeanDarkRatio, sum.StddevDarkRatio, sum.MedianDarkRatio)
	fmt.Printf("Confidence: mean %.3f, stddev %.3f\n", sum.MeanConfidence, sum.StddevConfidence)
	if sum.Learned > 0 {
		fmt.Printf("Learned %d new baseline colors\n", sum.Learned)
	}
}

// resolveLayout accepts a registered box selector (10F, SM2) or a path
// to a layout JSON file.
func resolveLayout(sel string) (boxspec.Layout, error) {
	if strings.HasSuffix(strings.ToLower(sel), ".json") {
		return boxspec.LoadFromFile(sel)
	}
	return boxspec.Get(sel)
}

// parseCrop reads a top,left,right,bottom percentage tuple, e.g. 9,19,83,92.
func parseCrop(s string) (grid.CropPercent, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return grid.CropPercent{}, fmt.Errorf("want top,left,right,bottom, got %q", s)
	}
	vals := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return grid.CropPercent{}, fmt.Errorf("bad component %q", part)
		}
		vals[i] = v
	}
	crop := grid.CropPercent{Top: vals[0], Left: vals[1], Right: vals[2], Bottom: vals[3]}
	if err := crop.Validate(); err != nil {
		return grid.CropPercent{}, err
	}
	return crop, nil
}

func writeCSVFile(path string, rows []reconcile.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: boxscan -image <photo> -box <selector> [options]\n\n")
	fmt.Fprintf(out, "Scans a phone box photo, classifies every slot and reconciles the\n")
	fmt.Fprintf(out, "result against a student roster.\n\nOptions:\n")
	flag.PrintDefaults()
	fmt.Fprintf(out, "\nRegistered boxes:\n")
	for _, l := range boxspec.List() {
		fmt.Fprintf(out, "  %-4s %s, %dx%d slots\n", l.Code, l.Name, l.Rows, l.Cols)
	}
	fmt.Fprintf(out, "  or a grade plus box letter (e.g. 10F) for the lettered grade boxes,\n")
	fmt.Fprintf(out, "  or a path to a layout JSON file\n")
	fmt.Fprintf(out, "\nIdentifier formats:\n")
	for _, f := range slotid.Formats() {
		fmt.Fprintf(out, "  %-15s %s, e.g. %s\n", f.Name, f.Description, f.Example)
	}
}
