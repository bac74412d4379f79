// Command shade-analyzer runs the solar array layout and shading engine
// against a YAML scenario file and writes the analysis result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/RubinhoSilva/bess-pro-sub010/internal/log"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/analysis"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/pvarray"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/scenario"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/shading"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/solar"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

// output is the JSON document written for one run.
type output struct {
	Scenario string           `json:"scenario"`
	Overflow bool             `json:"overflow"`
	Modules  []pvarray.Module `json:"modules"`
	Analysis *analysis.Result `json:"analysis"`
}

func main() {
	scenarioFile := flag.String("scenario", "scenario.yaml", "Path to YAML scenario file")
	mode := flag.String("mode", "", "Override analysis mode: current, daily, monthly, annual")
	outFile := flag.String("output", "", "Write JSON result to this file instead of stdout")
	workers := flag.Int("workers", runtime.NumCPU(), "Worker pool size for monthly/annual sampling")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("shade-analyzer %s\n", version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(*scenarioFile, *mode, *outFile, *workers); err != nil {
		log.Errorf("shade-analyzer: %v", err)
		os.Exit(1)
	}
}

func run(scenarioFile, modeOverride, outFile string, workers int) error {
	sc, err := scenario.Load(scenarioFile)
	if err != nil {
		return err
	}
	mode := analysis.Mode(sc.Mode)
	if modeOverride != "" {
		mode = analysis.Mode(modeOverride)
	}
	ref, err := sc.ReferenceTime()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sun := solar.Calculate(ref, sc.Location.Latitude, sc.Location.Longitude)
	log.Debugf("sun at reference: azimuth=%.1f elevation=%.1f visible=%v",
		sun.AzimuthDeg, sun.ElevationDeg, sun.Visible)

	calc := shading.NewCalculator()
	modules, overflow, err := pvarray.NewGenerator(calc).Generate(
		sc.Polygon(), sc.Module, sc.Grid, sc.Installation, sun, sc.OptimizeSpacing)
	if err != nil {
		return fmt.Errorf("generating module grid: %w", err)
	}
	if overflow {
		log.Warnf("grid footprint exceeds the mounting area bounding box; layout returned anyway")
	}
	log.Infof("generated %d modules (%s)", len(modules), sc.Name)

	analyzer := analysis.New(calc, log.GetSugaredLogger(), workers)
	result, err := analyzer.Analyze(ctx, analysis.Request{
		Modules:   modules,
		Latitude:  sc.Location.Latitude,
		Longitude: sc.Location.Longitude,
		Mode:      mode,
		Reference: ref,
		OnProgress: func(done, total int) {
			log.Debugf("sampling progress: %d/%d", done, total)
		},
	})
	if err != nil {
		return err
	}
	log.Infof("analysis %s complete: loss=%.3f", result.RunID, result.ShadingLossFraction)

	doc, err := json.MarshalIndent(output{
		Scenario: sc.Name,
		Overflow: overflow,
		Modules:  modules,
		Analysis: result,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	doc = append(doc, '\n')

	if outFile == "" {
		_, err = os.Stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(outFile, doc, 0o644); err != nil {
		return fmt.Errorf("writing result file: %w", err)
	}
	return nil
}
