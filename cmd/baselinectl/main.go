// Command baselinectl inspects and transfers learned slot color baselines.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"phonebox-scanner/internal/baseline"
	"phonebox-scanner/internal/version"
)

func main() {
	baselinePath := flag.String("baselines", "", "Baseline store path (default: per-user config dir)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println("baselinectl " + version.String())
		return
	}
	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	path := *baselinePath
	if path == "" {
		var err error
		path, err = baseline.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve baseline path: %v\n", err)
			os.Exit(1)
		}
	}
	store := baseline.NewFileStore(path)
	profiles, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load baselines: %v\n", err)
		os.Exit(1)
	}
	set := baseline.NewSet(profiles)

	switch cmd := flag.Arg(0); cmd {
	case "list":
		runList(set, path)
	case "export":
		runExport(set, flag.Arg(1))
	case "import":
		runImport(set, store, flag.Arg(1))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func runList(set *baseline.Set, path string) {
	profiles := set.Export()
	if len(profiles) == 0 {
		fmt.Printf("No baselines stored at %s\n", path)
		return
	}
	fmt.Printf("%-12s %-10s %s\n", "identifier", "color", "learned")
	for _, p := range profiles {
		fmt.Printf("%-12s %-10s %s\n", p.SecurityNumber, p.Color, p.LastUpdated.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\n%d baselines at %s\n", len(profiles), path)
}

func runExport(set *baseline.Set, path string) {
	data, err := json.MarshalIndent(set.Export(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode baselines: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')
	if path == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d baselines to %s\n", set.Len(), path)
}

func runImport(set *baseline.Set, store baseline.Store, path string) {
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: baselinectl import <file>")
		os.Exit(1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}
	var records []baseline.Profile
	if err := json.Unmarshal(data, &records); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse %s: %v\n", path, err)
		os.Exit(1)
	}
	before := set.Len()
	if err := set.Import(records); err != nil {
		fmt.Fprintf(os.Stderr, "Import rejected: %v\n", err)
		os.Exit(1)
	}
	if err := store.Save(set.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save baselines: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d records, %d new, %d total\n", len(records), set.Len()-before, set.Len())
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: baselinectl [-baselines <file>] <command> [args]\n\n")
	fmt.Fprintf(out, "Commands:\n")
	fmt.Fprintf(out, "  list             print the stored baselines as a table\n")
	fmt.Fprintf(out, "  export [file]    write the baselines as JSON to a file or stdout\n")
	fmt.Fprintf(out, "  import <file>    merge baselines from a JSON export\n\nOptions:\n")
	flag.PrintDefaults()
}
