//go:build dev

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/felixge/fgprof"
	"github.com/mazrean/json2jsonl/internal/metrics"
	"github.com/mazrean/json2jsonl/log"
)

type DevFlag struct {
	CPUProf         string        `kong:"optional,help='CPU profile output file',type='path'"`
	MemProf         string        `kong:"optional,help='Memory profile output file',type='path'"`
	Metrics         string        `kong:"optional,help='Metrics output file',type='path'"`
	MetricsInterval time.Duration `kong:"default='100ms',help='Sampling interval of process metrics'"`
	FgProf          string        `kong:"optional,help='fgprof output file',type='path'"`

	cpuProfFile *os.File     `kong:"-"`
	fgprofStop  func() error `kong:"-"`
}

// StartProfiling starts the profilers selected on the command line
func (d *DevFlag) StartProfiling(ctx context.Context, logger log.Logger) error {
	if d.CPUProf != "" {
		f, err := os.Create(d.CPUProf)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile file: %w", err)
		}
		d.cpuProfFile = f

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("failed to start CPU profiling: %w", err)
		}
	}

	if d.FgProf != "" {
		f, err := os.Create(d.FgProf)
		if err != nil {
			return fmt.Errorf("failed to create fgprof file: %w", err)
		}

		stop := fgprof.Start(f, fgprof.FormatPprof)
		d.fgprofStop = func() error {
			return errors.Join(stop(), f.Close())
		}
	}

	if d.Metrics != "" {
		if err := metrics.StartProcStat(ctx, logger, d.MetricsInterval); err != nil {
			return fmt.Errorf("failed to initialize proc stat: %w", err)
		}
	}

	return nil
}

// StopProfiling stops the profilers and writes the memory profile and metrics
func (d *DevFlag) StopProfiling() error {
	var errs []error

	if d.cpuProfFile != nil {
		pprof.StopCPUProfile()
		if err := d.cpuProfFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close CPU profile: %w", err))
		}
	}

	if d.fgprofStop != nil {
		if err := d.fgprofStop(); err != nil {
			errs = append(errs, fmt.Errorf("stop fgprof: %w", err))
		}
	}

	if d.MemProf != "" {
		if err := writeFile(d.MemProf, func(f *os.File) error {
			runtime.GC()
			return pprof.WriteHeapProfile(f)
		}); err != nil {
			errs = append(errs, fmt.Errorf("write memory profile: %w", err))
		}
	}

	if d.Metrics != "" {
		if err := writeFile(d.Metrics, func(f *os.File) error {
			return metrics.WriteMetrics(f)
		}); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}

	return errors.Join(errs...)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	return errors.Join(write(f), f.Close())
}
