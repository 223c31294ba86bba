//go:build dev

package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/mazrean/json2jsonl/log"
	"github.com/prometheus/procfs"
)

var (
	cpuSelfGauge = NewGauge("cpu_self")
	memSelfGauge = NewGauge("mem_self")
	ioSelfGauge  = NewGauge("io_self")
	memAllGauge  = NewGauge("mem_all")
)

// StartProcStat samples the resource usage of this process every interval until ctx is done
func StartProcStat(ctx context.Context, logger log.Logger, interval time.Duration) error {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return fmt.Errorf("create procfs: %w", err)
	}

	proc, err := fs.Self()
	if err != nil {
		return fmt.Errorf("open self proc: %w", err)
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			if err := getSelfStat(proc); err != nil {
				logger.Debugf("failed to get process stat: %v", err)
			}
			if err := getSelfIO(proc); err != nil {
				logger.Debugf("failed to get process io: %v", err)
			}
			if err := getMemAllStat(fs); err != nil {
				logger.Debugf("failed to get meminfo: %v", err)
			}
		}
	}()

	return nil
}

func getSelfStat(proc procfs.Proc) error {
	stat, err := proc.Stat()
	if err != nil {
		return fmt.Errorf("get stat: %w", err)
	}

	cpuSelfGauge.Set(stat.CPUTime(), "total")
	cpuSelfGauge.Set(float64(stat.UTime), "utime")
	cpuSelfGauge.Set(float64(stat.STime), "stime")
	// page cache faults show how the mapped input is being paged in
	cpuSelfGauge.Set(float64(stat.MajFlt), "major_faults")
	cpuSelfGauge.Set(float64(stat.MinFlt), "minor_faults")
	memSelfGauge.Set(float64(stat.ResidentMemory()), "resident")
	memSelfGauge.Set(float64(stat.VirtualMemory()), "virtual")

	return nil
}

func getSelfIO(proc procfs.Proc) error {
	procIO, err := proc.IO()
	if err != nil {
		return fmt.Errorf("get io: %w", err)
	}

	ioSelfGauge.Set(float64(procIO.RChar), "rchar")
	ioSelfGauge.Set(float64(procIO.WChar), "wchar")
	ioSelfGauge.Set(float64(procIO.ReadBytes), "read_bytes")
	ioSelfGauge.Set(float64(procIO.WriteBytes), "write_bytes")

	return nil
}

func getMemAllStat(fs procfs.FS) error {
	mem, err := fs.Meminfo()
	if err != nil {
		return fmt.Errorf("get meminfo: %w", err)
	}

	if mem.MemTotal != nil {
		memAllGauge.Set(float64(*mem.MemTotal), "total")
	}
	if mem.MemAvailable != nil {
		memAllGauge.Set(float64(*mem.MemAvailable), "available")
	}
	if mem.Cached != nil {
		memAllGauge.Set(float64(*mem.Cached), "cached")
	}

	return nil
}
