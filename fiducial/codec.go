// Package fiducial - YAML persistence of generated dictionaries.
//
// The document carries exactly what a detector needs at startup: the grid
// size, the achieved tau and, per member, its id and n rows of n bits.
//
//	grid_size: 3
//	tau: 2
//	target_size: 2
//	markers:
//	  - id: 0
//	    rows: ["100", "010", "101"]
package fiducial

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a Dictionary.
type document struct {
	GridSize   int              `yaml:"grid_size"`
	Tau        int              `yaml:"tau"`
	TargetSize int              `yaml:"target_size,omitempty"`
	Markers    []markerDocument `yaml:"markers"`
}

type markerDocument struct {
	ID   int      `yaml:"id"`
	Rows []string `yaml:"rows,flow"`
}

// Encode writes d to w as YAML.
func Encode(w io.Writer, d *Dictionary) error {
	doc := document{
		GridSize:   d.gridSize,
		Tau:        d.tau,
		TargetSize: d.targetSize,
		Markers:    make([]markerDocument, len(d.members)),
	}
	for id, m := range d.members {
		doc.Markers[id] = markerDocument{ID: id, Rows: m.Rows()}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("fiducial: encode dictionary: %w", err)
	}
	return enc.Close()
}

// Decode reads a dictionary written by Encode.
// Returns ErrCorruptDictionary (wrapping the cause) when the grid size is out
// of range, ids are not 0..m-1 in order, or a marker is not an n×n grid of
// '0'/'1' rows. A missing target_size defaults to the member count.
func Decode(r io.Reader) (*Dictionary, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptDictionary, err)
	}
	if doc.GridSize < 1 || doc.GridSize > MaxGridSize {
		return nil, fmt.Errorf("%w: grid_size %d", ErrCorruptDictionary, doc.GridSize)
	}
	target := doc.TargetSize
	if target < len(doc.Markers) {
		target = len(doc.Markers)
	}
	if target < 1 {
		target = 1
	}
	d := &Dictionary{
		targetSize: target,
		gridSize:   doc.GridSize,
		tau:        doc.Tau,
		members:    make([]Marker, 0, len(doc.Markers)),
	}
	for i, md := range doc.Markers {
		if md.ID != i {
			return nil, fmt.Errorf("%w: marker %d has id %d", ErrCorruptDictionary, i, md.ID)
		}
		m, err := ParseMarker(md.Rows...)
		if err != nil {
			return nil, fmt.Errorf("%w: marker %d: %w", ErrCorruptDictionary, i, err)
		}
		if m.Size() != doc.GridSize {
			return nil, fmt.Errorf("%w: marker %d is %dx%d, want %dx%d",
				ErrCorruptDictionary, i, m.Size(), m.Size(), doc.GridSize, doc.GridSize)
		}
		d.members = append(d.members, m)
	}
	return d, nil
}
