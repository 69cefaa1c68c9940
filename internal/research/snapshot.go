// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/contentforge/pkg/types"
)

// Snapshot is the on-disk representation of a research run. A snapshot can
// be saved once and replayed into later pipeline runs without re-querying
// the search provider.
type Snapshot struct {
	Research types.AggregatedResearch `yaml:"research"`
	Summary  SnapshotSummary          `yaml:"summary"`
}

// SnapshotSummary stores result counts and a timestamp.
type SnapshotSummary struct {
	Layers     int       `yaml:"layers"`
	Sources    int       `yaml:"sources"`
	Statistics int       `yaml:"statistics"`
	Quotes     int       `yaml:"quotes"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// WriteSnapshot saves research to a YAML file at path.
func WriteSnapshot(path string, r *types.AggregatedResearch, now time.Time) error {
	s := Snapshot{
		Research: *r,
		Summary: SnapshotSummary{
			Layers:     len(r.Layers),
			Sources:    r.SourcesCount,
			Statistics: len(r.Statistics),
			Quotes:     len(r.Quotes),
			Timestamp:  now,
		},
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return errors.Wrap(err, "marshaling research snapshot")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing research snapshot %s", path)
}

// ReadSnapshot loads a previously saved research snapshot from disk.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading research snapshot")
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parsing research snapshot")
	}
	return &s, nil
}

// Replay serves a fixed research result instead of searching. It satisfies
// the same Research method as Aggregator.
type Replay struct {
	research *types.AggregatedResearch
}

// NewReplay returns a researcher that always yields r.
func NewReplay(r *types.AggregatedResearch) *Replay {
	return &Replay{research: r}
}

// Research returns the stored research. The topic and format are ignored.
func (p *Replay) Research(_ context.Context, _ string, _ types.ContentFormat) *types.AggregatedResearch {
	return p.research
}
