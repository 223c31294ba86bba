// Package record contains the element types a top-level JSON array can be decoded into.
package record

import (
	"fmt"
)

// Dataset selects the element type used for a whole run
type Dataset string

const (
	// DatasetGeneric passes every element through unchanged
	DatasetGeneric Dataset = "generic"
	// DatasetDeaths decodes elements as Deaths records
	DatasetDeaths Dataset = "Deaths"
	// DatasetMinimalInfoUniqueTests decodes elements as MinimalInfoUniqueTests records
	DatasetMinimalInfoUniqueTests Dataset = "MinimalInfoUniqueTests"
)

// Datasets returns every supported dataset
func Datasets() []Dataset {
	return []Dataset{DatasetGeneric, DatasetDeaths, DatasetMinimalInfoUniqueTests}
}

// ParseDataset converts a dataset name into a Dataset
func ParseDataset(name string) (Dataset, error) {
	for _, d := range Datasets() {
		if string(d) == name {
			return d, nil
		}
	}

	return "", fmt.Errorf("unknown dataset: %q", name)
}

// Expecting describes the input a run over this dataset requires
func (d Dataset) Expecting() string {
	if d == DatasetGeneric {
		return "a nonempty sequence"
	}

	return fmt.Sprintf("a nonempty sequence of %s records", string(d))
}
