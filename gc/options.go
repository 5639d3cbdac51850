package gc

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Default tunables, matching the values implied by ZDoom's gc_pause and
// gc_stepmul cvars (dobjgc.h/original_source): a 200% pause before the next
// cycle, and a step multiplier of 100 (do roughly as much collector work as
// the application has allocated since the last step).
const (
	DefaultPause   = 200
	DefaultStepMul = 100
)

// Options collects the collector's process-wide tunables. Grounded on the
// teacher's Options-struct convention (e.g. dirty.Options, logger.Options):
// a plain struct with documented defaults, constructed directly or loaded
// from a file.
type Options struct {
	// Pause is the percentage by which live bytes must grow, relative to
	// the live set at the end of the last cycle, before the next cycle is
	// triggered. 200 means "wait until live bytes have roughly tripled."
	Pause int

	// StepMul controls how much collector work is done per byte allocated:
	// work units per step = (bytes allocated since last step) * StepMul / 100.
	StepMul int

	// FinalGC, once set (via FinalGC(), not directly), makes Fixed objects
	// collectible and forbids new managed allocations — it marks the
	// collector's final pass before process shutdown.
	FinalGC bool
}

// yamlOptions mirrors Options for config-file loading; kept distinct from
// Options so the public struct never grows yaml struct tags it doesn't need
// for in-code construction.
type yamlOptions struct {
	Pause   int  `yaml:"pause"`
	StepMul int  `yaml:"stepMul"`
	FinalGC bool `yaml:"finalGC"`
}

// LoadOptionsFile reads a YAML tunables file of the form:
//
//	pause: 200
//	stepMul: 100
//	finalGC: false
//
// for embedders who prefer file-based configuration over constructing
// Options in code. Zero or absent fields fall back to the package defaults.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	var y yamlOptions
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Options{}, err
	}
	opts := Options{Pause: y.Pause, StepMul: y.StepMul, FinalGC: y.FinalGC}
	return opts.withDefaults(), nil
}

func (o Options) withDefaults() Options {
	if o.Pause <= 0 {
		o.Pause = DefaultPause
	}
	if o.StepMul <= 0 {
		o.StepMul = DefaultStepMul
	}
	return o
}
