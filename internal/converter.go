package internal

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mazrean/json2jsonl/internal/jsonl"
	"github.com/mazrean/json2jsonl/internal/metrics"
	"github.com/mazrean/json2jsonl/internal/source"
	"github.com/mazrean/json2jsonl/log"
	"github.com/mazrean/json2jsonl/record"
	"github.com/mazrean/json2jsonl/sequence"
)

// progressInterval is the number of records between progress samples
const progressInterval = 1 << 16

var (
	recordsGauge  = metrics.NewGauge("converter_records")
	consumedGauge = metrics.NewGauge("converter_consumed_bytes")
	durationGauge = metrics.NewGauge("converter_duration")
)

// Converter re-emits the elements of a top-level JSON array as JSON Lines
type Converter struct {
	logger log.Logger
	writer *jsonl.Writer
}

func NewConverter(logger log.Logger, w io.Writer) *Converter {
	return &Converter{
		logger: logger,
		writer: jsonl.NewWriter(w),
	}
}

// Stats summarizes a conversion
type Stats struct {
	// Records is the number of lines written
	Records int
	// Bytes is the number of input bytes read
	Bytes    int64
	Duration time.Duration
}

// Convert decodes every element of src as a dataset record and writes it as one line.
// Lines are written as soon as their element is decoded, so on error the lines of
// the preceding elements have already been written.
// ctx is checked between elements.
func (c *Converter) Convert(ctx context.Context, src source.Source, dataset record.Dataset) (Stats, error) {
	start := time.Now()

	var (
		records int
		err     error
	)
	durationGauge.Stopwatch(func() {
		switch dataset {
		case record.DatasetGeneric:
			records, err = convert[record.Raw](ctx, c, src, dataset)
		case record.DatasetDeaths:
			records, err = convert[record.Deaths](ctx, c, src, dataset)
		case record.DatasetMinimalInfoUniqueTests:
			records, err = convert[record.MinimalInfoUniqueTests](ctx, c, src, dataset)
		default:
			err = fmt.Errorf("unknown dataset %q", dataset)
		}
	}, string(dataset))

	stats := Stats{
		Records:  records,
		Bytes:    src.Consumed(),
		Duration: time.Since(start),
	}
	if err != nil {
		return stats, fmt.Errorf("convert %s: %w", src.Name(), err)
	}

	c.logger.Infof("converted %s %s records (%s) from %s in %s",
		humanize.Comma(int64(stats.Records)),
		dataset,
		humanize.Bytes(uint64(stats.Bytes)),
		src.Name(),
		stats.Duration.Round(time.Millisecond),
	)

	return stats, nil
}

func convert[T any](ctx context.Context, c *Converter, src source.Source, dataset record.Dataset) (int, error) {
	written := 0
	return sequence.ForEach(src.Parser(), func(v T) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.writer.Write(v); err != nil {
			return err
		}

		written++
		if written%progressInterval == 0 {
			consumed := src.Consumed()
			recordsGauge.Set(float64(written), string(dataset))
			consumedGauge.Set(float64(consumed), string(dataset))
			c.progress(written, consumed, src.Size())
		}

		return nil
	}, sequence.WithExpecting(dataset.Expecting()))
}

func (c *Converter) progress(records int, consumed, size int64) {
	if size == source.UnknownSize || size == 0 {
		c.logger.Debugf("%s records written, %s read", humanize.Comma(int64(records)), humanize.Bytes(uint64(consumed)))
		return
	}

	c.logger.Debugf("%s records written, %s of %s read (%.1f%%)",
		humanize.Comma(int64(records)),
		humanize.Bytes(uint64(consumed)),
		humanize.Bytes(uint64(size)),
		float64(consumed)/float64(size)*100,
	)
}
