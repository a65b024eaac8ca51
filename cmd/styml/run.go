package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/styml-go/styml"
	"github.com/styml-go/styml/encode"
	"github.com/styml-go/styml/internal/styllog"
)

func run(cfg *Config, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	log := styllog.New()
	defer log.Sync()

	if cfg.Help {
		fmt.Fprintf(cc.Out, "%s\nSyntax: %s\n\nOptions:\n", description, synopsis)
		fmt.Fprintln(cc.Out, " -d    Dumps on stdout the parsed file as YAML. Default is as Python structure.")
		fmt.Fprintln(cc.Out, " -n    Dumps on stdout some performance statistics on the parsing and YAML dumping")
		fmt.Fprintln(cc.Out, " -color  Force-enables key/comment coloring in -d output (default: auto from terminal)")
		fmt.Fprintln(cc.Out, " -h    This help")
		return cli.ExitCodeErr(1)
	}

	stdin, filename := false, ""
	for _, a := range args {
		if a == "-" {
			stdin = true
			continue
		}
		if filename != "" {
			fmt.Fprintf(cc.Out, "Error: the filename has been given twice (%q and %q)\n", filename, a)
			return cli.ExitCodeErr(1)
		}
		filename = a
	}
	if stdin == (filename != "") {
		fmt.Fprintln(cc.Out, "Error: one and only one way to get the input text shall be provided ('-' and <filename> are exclusive)")
		return cli.ExitCodeErr(1)
	}

	input, err := readInput(stdin, filename)
	if err != nil {
		fmt.Fprintf(cc.Out, "Error: unable to load the file %q\n", filename)
		return cli.ExitCodeErr(1)
	}

	var memBefore runtime.MemStats
	runtime.ReadMemStats(&memBefore)
	parseStart := time.Now()
	doc, err := styml.Parse(input)
	parseElapsed := time.Since(parseStart)
	var memAfter runtime.MemStats
	runtime.ReadMemStats(&memAfter)

	if err != nil {
		log.Debugw("parse failed", "bytes", len(input), "elapsed", parseElapsed)
		fmt.Fprintln(cc.Out, err.Error())
		return cli.ExitCodeErr(1)
	}
	log.Debugw("parsed", "bytes", len(input), "elapsed", parseElapsed)

	switch {
	case cfg.Stats:
		printStats(cc.Out, doc, len(input), parseElapsed, memAfter.TotalAlloc-memBefore.TotalAlloc)
	case cfg.Dump:
		out := styml.AsYaml(doc, yamlOpts(cfg, cc)...)
		fmt.Fprintf(cc.Out, "%s\n", out)
	default:
		out := styml.AsStructured(doc, true)
		fmt.Fprintf(cc.Out, "%s\n", out)
	}
	return nil
}

// yamlOpts decides whether to color the YAML dump: an explicit -color flag
// wins outright, otherwise color is auto-enabled when cc.Out is a terminal,
// mirroring go-tony/cmd/o/configs.go's encOpts isatty fallback.
func yamlOpts(cfg *Config, cc *cli.Context) []encode.Option {
	for _, opt := range cfg.Cmd.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return []encode.Option{styml.WithColor(cfg.Color)}
		}
	}
	if f, ok := cc.Out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return []encode.Option{styml.WithColor(true)}
	}
	return nil
}

func readInput(stdin bool, filename string) ([]byte, error) {
	if stdin {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filename)
}

// printStats reports input size, parse/emit timing, and a heap-growth
// factor relative to input size — the Go-native analogue of encoder.cpp's
// /proc/self/stat page-count sampling (see SPEC_FULL.md's supplemented
// features).
func printStats(w io.Writer, doc *styml.Document, inputBytes int, parseElapsed time.Duration, heapGrowth uint64) {
	yamlStart := time.Now()
	_ = styml.AsYaml(doc)
	yamlElapsed := time.Since(yamlStart)

	structStart := time.Now()
	_ = styml.AsStructured(doc, false)
	structElapsed := time.Since(structStart)

	mbPerSec := func(d time.Duration) float64 {
		us := float64(d.Microseconds())
		if us < 1 {
			us = 1
		}
		return float64(inputBytes) / us
	}
	memFactor := float64(heapGrowth) / float64(maxInt(1, inputBytes))

	fmt.Fprintf(w, "  Document   : %.1f KB\n", 0.001*float64(inputBytes))
	fmt.Fprintf(w, "  Load speed : %.3f MB/s (%.3f ms)\n", mbPerSec(parseElapsed), 0.001*float64(parseElapsed.Microseconds()))
	fmt.Fprintf(w, "  Emit YAML  : %.3f MB/s (%.3f ms)\n", mbPerSec(yamlElapsed), 0.001*float64(yamlElapsed.Microseconds()))
	fmt.Fprintf(w, "  Emit Python: %.3f MB/s (%.3f ms)\n", mbPerSec(structElapsed), 0.001*float64(structElapsed.Microseconds()))
	fmt.Fprintf(w, "  Mem factor : %.1fx the input size (%.1f MB)\n", memFactor, 1e-6*float64(heapGrowth))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
