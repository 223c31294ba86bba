//go:build dev

// Package metrics records time series of gauges for profiling runs.
// Gauges only record in dev builds; elsewhere they are no-ops.
package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"
)

var (
	startTime    = time.Now()
	gaugesLocker = &sync.RWMutex{}
	gauges       = []*Gauge{}
)

// NewGauge registers a gauge written out by WriteMetrics
func NewGauge(name string) *Gauge {
	gauge := &Gauge{
		name: name,
	}

	gaugesLocker.Lock()
	defer gaugesLocker.Unlock()

	gauges = append(gauges, gauge)

	return gauge
}

// WriteMetrics writes every sample of every gauge as CSV.
// time is the offset in nanoseconds from process start.
func WriteMetrics(w io.Writer) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write([]string{"name", "label", "value", "time"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	gaugesLocker.RLock()
	defer gaugesLocker.RUnlock()

	for _, gauge := range gauges {
		for _, sample := range gauge.getSamples() {
			err := csvWriter.Write([]string{
				gauge.name,
				sample.label,
				strconv.FormatFloat(sample.value, 'f', -1, 64),
				strconv.FormatInt(sample.time.Sub(startTime).Nanoseconds(), 10),
			})
			if err != nil {
				return fmt.Errorf("write sample: %w", err)
			}
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush metrics: %w", err)
	}

	return nil
}

type sample struct {
	value float64
	time  time.Time
	label string
}

// Gauge is a named series of labeled samples
type Gauge struct {
	name          string
	samplesLocker sync.RWMutex
	samples       []sample
}

func (g *Gauge) Set(value float64, label string) {
	g.samplesLocker.Lock()
	defer g.samplesLocker.Unlock()

	g.samples = append(g.samples, sample{
		value: value,
		time:  time.Now(),
		label: label,
	})
}

func (g *Gauge) getSamples() []sample {
	g.samplesLocker.RLock()
	defer g.samplesLocker.RUnlock()

	return g.samples
}

// Stopwatch runs f and records its duration in nanoseconds
func (g *Gauge) Stopwatch(f func(), label string) {
	start := time.Now()
	start = start.Round(0) // delete monotonic clock value
	f()
	g.Set(float64(time.Since(start).Nanoseconds()), label)
}
