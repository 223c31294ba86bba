//go:build !dev

package config

import (
	"context"

	"github.com/mazrean/json2jsonl/log"
)

// DevFlag carries no options outside dev builds
type DevFlag struct{}

func (*DevFlag) StartProfiling(context.Context, log.Logger) error {
	return nil
}

func (*DevFlag) StopProfiling() error {
	return nil
}
