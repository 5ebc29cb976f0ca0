package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scalarwave/mandelgrid"
)

// preset is one named viewport in a preset file. Zero-valued fields leave
// the corresponding job field untouched.
//
//	presets:
//	  seahorse-deep:
//	    xmin: -0.7463
//	    xmax: -0.7453
//	    ymin: 0.1099
//	    ymax: 0.1109
//	    iterations: 5000
type preset struct {
	Xmin       float64 `yaml:"xmin"`
	Xmax       float64 `yaml:"xmax"`
	Ymin       float64 `yaml:"ymin"`
	Ymax       float64 `yaml:"ymax"`
	Iterations int     `yaml:"iterations"`
}

type presetFile struct {
	Presets map[string]preset `yaml:"presets"`
}

func loadPreset(path, name string) (preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return preset{}, fmt.Errorf("preset file: %w", err)
	}
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return preset{}, fmt.Errorf("preset file %s: %w", path, err)
	}
	p, ok := file.Presets[name]
	if !ok {
		return preset{}, fmt.Errorf("preset %q not found in %s", name, path)
	}
	return p, nil
}

func (p preset) apply(job *mandelgrid.Job) {
	if p.Xmin != 0 || p.Xmax != 0 || p.Ymin != 0 || p.Ymax != 0 {
		job.Region = mandelgrid.Region{Xmin: p.Xmin, Xmax: p.Xmax, Ymin: p.Ymin, Ymax: p.Ymax}
	}
	if p.Iterations > 0 {
		job.MaxIter = p.Iterations
	}
}
