package sample_test

import (
	"testing"

	"github.com/miounet11/jisuanqipc-sub000/eval"
	"github.com/miounet11/jisuanqipc-sub000/parser"
	"github.com/miounet11/jisuanqipc-sub000/sample"
)

// BenchmarkSample2D measures a 1000-step sweep of a mixed expression.
func BenchmarkSample2D(b *testing.B) {
	fn, err := parser.ParseString("sin(x) * x^2 + sqrt(abs(x))")
	if err != nil {
		b.Fatal(err)
	}
	domain, err := sample.NewRange(-10, 10)
	if err != nil {
		b.Fatal(err)
	}
	s := sample.New(eval.New())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Sample2D(fn, domain, sample.WithResolution(1000)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSample3D measures a 50x50 surface, serial vs 4 workers.
func BenchmarkSample3D(b *testing.B) {
	fn, err := parser.ParseString("sin(x) * cos(y)")
	if err != nil {
		b.Fatal(err)
	}
	domain, err := sample.NewRange(-3, 3)
	if err != nil {
		b.Fatal(err)
	}
	s := sample.New(eval.New())

	b.Run("serial", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := s.Sample3D(fn, domain, domain); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("workers-4", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := s.Sample3D(fn, domain, domain, sample.WithWorkers(4)); err != nil {
				b.Fatal(err)
			}
		}
	})
}
