package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/FitrahHaque/splitpack/config"
	"github.com/FitrahHaque/splitpack/engine"
)

var Commands = [...]string{"compress", "decompress", "benchmark", "inspect", "help"}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flagSet := pflag.NewFlagSet("splitpack", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	compressCmd := flagSet.Bool(Commands[0], false, "Compress file(s)")
	decompressCmd := flagSet.Bool(Commands[1], false, "Decompress file(s)")
	benchmarkCmd := flagSet.Bool(Commands[2], false, "Benchmark algorithms on file(s)")
	inspectCmd := flagSet.Bool(Commands[3], false, "Print the header and code table of split-coded archive(s)")
	helpCmd := flagSet.BoolP(Commands[4], "h", false, "Help")

	algorithm := flagSet.String("algorithm", "", fmt.Sprintf("Which algorithm(s) to use, comma separated, choices include: %s", strings.Join(engine.Engines[:], ", ")))
	deleteAfter := flagSet.Bool("delete", false, "Delete input file(s) after a successful compress or decompress")
	outputFileExtension := flagSet.String("outfileext", "", "File extension used for the result")
	configPath := flagSet.String("config", "", "YAML configuration file")
	reportPath := flagSet.String("report", "", "Write benchmark results as CBOR to this file")
	logLevel := flagSet.String("log-level", "", "Log level: debug, info, warn, error")
	noProgress := flagSet.Bool("no-progress", false, "Hide progress bars")
	verify := flagSet.Bool("verify", false, "Decode every archive after writing it and compare digests")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *helpCmd {
		printHelp(stderr, flagSet)
		return nil
	}

	commandsSelected := countTrue([]bool{*compressCmd, *decompressCmd, *benchmarkCmd, *inspectCmd})
	if commandsSelected > 1 {
		return errors.New("specify a single command")
	} else if commandsSelected == 0 {
		fmt.Fprintln(stderr, "No command is selected. Compression by default")
		*compressCmd = true
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flagSet.Changed("algorithm") {
		cfg.Algorithm = *algorithm
	}
	if flagSet.Changed("outfileext") {
		cfg.Extension = *outputFileExtension
	}
	if flagSet.Changed("report") {
		cfg.Benchmark.Report = *reportPath
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if *noProgress {
		cfg.Progress = false
	}
	if *verify {
		cfg.Verify = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	files, err := parseFiles(flagSet.Args())
	if err != nil {
		return err
	}

	eng := engine.New(logger,
		engine.WithProgress(cfg.Progress),
		engine.WithProgressOutput(stderr),
		engine.WithVerify(cfg.Verify),
	)
	success := color.New(color.FgGreen, color.Bold)

	switch {
	case *compressCmd:
		if err := eng.CompressFiles(cfg.Algorithms(), files, cfg.Extension); err != nil {
			return err
		}
		success.Fprintf(stdout, "Compressed %d file(s) with %s\n", len(files), strings.Join(cfg.Algorithms(), ","))
	case *decompressCmd:
		if err := eng.DecompressFiles(cfg.Algorithms(), files, cfg.Extension); err != nil {
			return err
		}
		success.Fprintf(stdout, "Decompressed %d file(s) with %s\n", len(files), strings.Join(cfg.Algorithms(), ","))
	case *benchmarkCmd:
		return benchmark(eng, cfg, flagSet.Changed("algorithm"), files, stdout)
	case *inspectCmd:
		return inspect(eng, files, stdout)
	}

	if *deleteAfter {
		return deleteFiles(files)
	}
	return nil
}

func benchmark(eng *engine.Engine, cfg *config.Config, algorithmChanged bool, files []string, stdout io.Writer) error {
	names := cfg.Benchmark.Algorithms
	if algorithmChanged {
		names = cfg.Algorithms()
	}
	results, err := eng.Benchmark(names, files)
	if err != nil {
		return err
	}
	if err := engine.WriteTable(stdout, results); err != nil {
		return err
	}
	if cfg.Benchmark.Report == "" {
		return nil
	}
	f, err := os.Create(cfg.Benchmark.Report)
	if err != nil {
		return err
	}
	if err := engine.WriteReport(f, time.Now(), results); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(stdout, "Report written to %s\n", cfg.Benchmark.Report)
	return nil
}

func inspect(eng *engine.Engine, files []string, stdout io.Writer) error {
	heading := color.New(color.FgCyan, color.Bold)
	for _, file := range files {
		header, table, err := eng.InspectFile(file)
		if err != nil {
			return err
		}
		heading.Fprintf(stdout, "%s\n", file)
		fmt.Fprintf(stdout, "  version %d, %d entries, table %d bytes, data %d bytes\n",
			header.Version, header.Entries, header.TableBytes, header.DataBytes)
		for b, code := range table.All() {
			fmt.Fprintf(stdout, "  %-6q %s\n", b, code)
		}
	}
	return nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage of splitpack [COMMAND] [OPTIONS] <file(s)>\n")
	fmt.Fprintf(w, "Valid commands include:\n\t%s\n", strings.Join(Commands[:], ", "))
	fmt.Fprintf(w, "Files may be separated by commas.\nFlags:\n")
	flagSet.PrintDefaults()
}

// parseFiles splits every argument on commas and checks each file exists.
func parseFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		for _, f := range strings.Split(arg, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no file provided")
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("could not open the provided file %s: %w", f, err)
		}
	}
	return files, nil
}

func countTrue(commands []bool) int {
	count := 0
	for _, c := range commands {
		if c {
			count++
		}
	}
	return count
}

func deleteFiles(files []string) error {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			return err
		}
	}
	return nil
}
