// Package calc is the facade over the whole pipeline: it parses raw
// input into Expression records, evaluates them into Result records,
// renders graphs through the sampler, and solves simple equations
// numerically.
//
// What calc offers:
//
//   - 🧾 Expression: the durable record of one input string, with its
//     token stream, classification tag, bound variables and validity.
//   - 🎯 Result: one evaluation outcome, with display text, precision
//     metadata and wall-clock computation time.
//   - 🖥️ Calculator: Parse / Evaluate / Render / Solve, plus string
//     front-ends for the symbolic rewrites.
//   - 📦 Lossless JSON round-trips for Expression and Result; decimal
//     values travel as strings, trees are rebuilt from tokens.
//
// Typical flow:
//
//	c := calc.New(calc.WithPrecision(20))
//	res, err := c.Evaluate("2 + 3 * 4", nil)        // res.DisplayValue == "14"
//	e := c.Parse("sin(x) * x")
//	g, err := c.Render(e, sample.Func2D, domain, sample.Range{}, 200)
//
// Every failure is a typed sentinel from this package or the one that
// detected it (parser, eval, sample), so callers branch with errors.Is.
package calc
