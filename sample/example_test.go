package sample_test

import (
	"fmt"

	"github.com/miounet11/jisuanqipc-sub000/eval"
	"github.com/miounet11/jisuanqipc-sub000/parser"
	"github.com/miounet11/jisuanqipc-sub000/sample"
)

// ExampleSampler_Sample2D renders y = x² over [-2, 2] with four steps.
func ExampleSampler_Sample2D() {
	fn, _ := parser.ParseString("x^2")
	domain, _ := sample.NewRange(-2, 2)

	s := sample.New(eval.New())
	points, _ := s.Sample2D(fn, domain, sample.WithResolution(4))
	for _, p := range points {
		fmt.Printf("(%g, %g)\n", p.X, p.Y)
	}
	// Output:
	// (-2, 4)
	// (-1, 1)
	// (0, 0)
	// (1, 1)
	// (2, 4)
}

// ExampleSampler_SamplePolar renders the unit circle r = 1 with a
// quarter-turn resolution.
func ExampleSampler_SamplePolar() {
	fn, _ := parser.ParseString("1")
	turn, _ := sample.NewRange(0, 360)

	s := sample.New(eval.New())
	points, _ := s.SamplePolar(fn, turn,
		sample.WithResolution(4), sample.WithAngleUnit(sample.Degrees))
	for _, p := range points {
		fmt.Printf("(%.0f, %.0f)\n", p.X, p.Y)
	}
	// Output:
	// (1, 0)
	// (0, 1)
	// (-1, 0)
	// (-0, -1)
	// (1, -0)
}
