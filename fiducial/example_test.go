package fiducial_test

import (
	"fmt"

	"github.com/katalvlaran/fiducial/fiducial"
)

// ExampleMarker_Rotate turns a striped 3×3 marker by 90° and 180°.
func ExampleMarker_Rotate() {
	m, _ := fiducial.ParseMarker("101", "101", "101")
	fmt.Println(m.Rotate(1))
	fmt.Println(m.Rotate(2))
	// Output:
	// 111/000/111
	// 101/101/101
}

// ExampleMarker_SelfHammingDistance shows how far a marker is from its own
// rotations; zero would make its orientation ambiguous.
func ExampleMarker_SelfHammingDistance() {
	m, _ := fiducial.ParseMarker("100", "010", "101")
	fmt.Println(m.SelfHammingDistance())
	// Output: 2
}

// ExampleGenerate_degenerate requests a 1×1 dictionary. A single cell looks
// the same from every side, so tau decays all the way to zero before the
// marker is accepted, and the result says so.
func ExampleGenerate_degenerate() {
	res, err := fiducial.Generate(1, 1, fiducial.WithSeed(1))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("status:", res.Status)
	fmt.Println("tau:", res.Tau)
	fmt.Println("degenerate:", res.Degenerate())
	// Output:
	// status: done
	// tau: 0
	// degenerate: true
}

// ExampleDictionary_Nearest classifies an observed grid read from an unknown side.
func ExampleDictionary_Nearest() {
	d, _ := fiducial.NewDictionary(1, 3)
	m, _ := fiducial.ParseMarker("100", "010", "101")
	d.Append(m)

	observed := m.Rotate(1)
	match, ok := d.Nearest(observed)
	fmt.Println(ok, match.ID, match.Distance, match.Rotation)
	// Output: true 0 0 1
}
