package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/cockroachdb/apd/v3"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/miounet11/jisuanqipc-sub000/analyze"
	"github.com/miounet11/jisuanqipc-sub000/calc"
	"github.com/miounet11/jisuanqipc-sub000/sample"
	"github.com/miounet11/jisuanqipc-sub000/token"
)

const (
	appName     = "calcgraph"
	historyFile = ".calcgraph_history"
	promptMain  = "==> "
	banner      = "calcgraph REPL. Ctrl+C cancels input, Ctrl+D exits. Type :help for commands."
	helpText    = `
REPL commands:
  :help                 Show this help
  :quit / :exit         Exit the REPL
  :prec <digits>        Set decimal precision for new evaluations
  :simplify <expr>      Apply the symbolic rewrite rules
  :diff <expr> [var]    Differentiate (default variable: x)
  :int <expr> [var]     Integrate (default variable: x)
  :solve <equation>     Find real roots in [-10, 10]
  :plot <expr>          Draw y = f(x) over [-10, 10]

name = <expr> binds a session variable; any other input evaluates.
`
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

var (
	flagPrecision  uint32
	flagScientific bool
)

func newCalculator() *calc.Calculator {
	opts := []calc.Option{calc.WithPrecision(flagPrecision)}
	if flagScientific {
		opts = append(opts, calc.WithScientificMode())
	}
	return calc.New(opts...)
}

func main() {
	root := &cobra.Command{
		Use:           appName,
		Short:         "decimal calculator with graph sampling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Uint32Var(&flagPrecision, "precision", 34, "decimal precision in significant digits")
	root.PersistentFlags().BoolVar(&flagScientific, "scientific", false, "tag plain input as scientific")
	root.AddCommand(newEvalCmd(), newPlotCmd(), newSolveCmd(), newReplCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(appName+": "+err.Error()))
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------
// eval
// -----------------------------------------------------------------------------

func newEvalCmd() *cobra.Command {
	var bindings []string
	var long bool

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "evaluate an expression and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			vars, err := parseBindings(bindings)
			if err != nil {
				return err
			}
			res, err := newCalculator().Evaluate(strings.Join(args, " "), vars)
			if err != nil {
				return err
			}
			fmt.Println(res.DisplayValue)
			if long {
				fmt.Printf("format=%s precision=%d exact=%v in %s\n",
					res.Format, res.Precision, res.IsExact, res.ComputationTime)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&bindings, "var", nil, "variable binding name=value (repeatable)")
	cmd.Flags().BoolVar(&long, "long", false, "print result metadata")
	return cmd
}

func parseBindings(pairs []string) (map[string]*apd.Decimal, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]*apd.Decimal, len(pairs))
	for _, pair := range pairs {
		name, text, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("binding %q is not name=value", pair)
		}
		v, _, err := apd.NewFromString(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("binding %q: %v", pair, err)
		}
		vars[strings.TrimSpace(name)] = v
	}
	return vars, nil
}

// -----------------------------------------------------------------------------
// plot
// -----------------------------------------------------------------------------

func newPlotCmd() *cobra.Command {
	var (
		typeTag                string
		xmin, xmax, ymin, ymax float64
		resolution             int
		width, height          int
		listPoints             bool
		analyzeCurve           bool
	)

	cmd := &cobra.Command{
		Use:   "plot <expression>",
		Short: "sample an expression and draw it as ASCII art",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ft, err := sample.FunctionTypeFromString(typeTag)
			if err != nil {
				return err
			}
			xDomain, err := sample.NewRange(xmin, xmax)
			if err != nil {
				return err
			}
			yDomain, err := sample.NewRange(ymin, ymax)
			if err != nil {
				return err
			}

			c := newCalculator()
			g, err := c.Render(c.Parse(strings.Join(args, " ")), ft, xDomain, yDomain, resolution)
			if err != nil {
				return err
			}

			switch {
			case listPoints:
				for _, p := range g.Points {
					fmt.Printf("%g\t%g\t%g\n", p.X, p.Y, p.Z)
				}
			case ft == sample.Func3D:
				return errors.New("3d surfaces have no ASCII projection, use --points")
			default:
				fmt.Print(asciiRender(g, width, height))
				fmt.Printf("x: [%g, %g]  y: [%g, %g]  %d points\n",
					xDomain.Min, xDomain.Max, g.Range.Min, g.Range.Max, len(g.Points))
			}

			if analyzeCurve {
				return printSpecialPoints(g.Points)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&typeTag, "type", "2d", "function type: 2d, 3d, polar or implicit")
	cmd.Flags().Float64Var(&xmin, "xmin", -10, "domain lower bound (theta for polar)")
	cmd.Flags().Float64Var(&xmax, "xmax", 10, "domain upper bound (theta for polar)")
	cmd.Flags().Float64Var(&ymin, "ymin", -10, "second-axis lower bound (3d and implicit)")
	cmd.Flags().Float64Var(&ymax, "ymax", 10, "second-axis upper bound (3d and implicit)")
	cmd.Flags().IntVar(&resolution, "resolution", 100, "steps per swept axis")
	cmd.Flags().IntVar(&width, "width", 72, "ASCII canvas width")
	cmd.Flags().IntVar(&height, "height", 20, "ASCII canvas height")
	cmd.Flags().BoolVar(&listPoints, "points", false, "print raw points instead of drawing")
	cmd.Flags().BoolVar(&analyzeCurve, "analyze", false, "report zeros and extrema")
	return cmd
}

// asciiRender projects the graph's points through its viewport onto a
// character canvas, with axes where they fall inside the frame.
func asciiRender(g *sample.Graph, width, height int) string {
	rows := make([][]byte, height)
	for i := range rows {
		rows[i] = make([]byte, width)
		for j := range rows[i] {
			rows[i][j] = ' '
		}
	}

	w, h := float64(width), float64(height)
	ax, ay := g.Viewport.ToScreen(0, 0, w, h)
	if col := int(ax); col >= 0 && col < width {
		for r := range rows {
			rows[r][col] = '|'
		}
	}
	if row := int(ay); row >= 0 && row < height {
		for c := 0; c < width; c++ {
			if rows[row][c] == ' ' {
				rows[row][c] = '-'
			}
		}
	}

	for _, p := range g.Points {
		sx, sy := g.Viewport.ToScreen(p.X, p.Y, w, h)
		col, row := int(sx), int(sy)
		if col >= 0 && col < width && row >= 0 && row < height {
			rows[row][col] = '*'
		}
	}

	var b strings.Builder
	for _, r := range rows {
		b.Write(r)
		b.WriteByte('\n')
	}
	return b.String()
}

func printSpecialPoints(points []sample.Point3D) error {
	found, err := analyze.FindSpecialPoints(points, analyze.DefaultTolerance)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Println("no special points found")
		return nil
	}
	for _, sp := range found {
		fmt.Println(sp.Description)
	}
	return nil
}

// -----------------------------------------------------------------------------
// solve
// -----------------------------------------------------------------------------

func newSolveCmd() *cobra.Command {
	var min, max float64

	cmd := &cobra.Command{
		Use:   "solve <equation>",
		Short: "find real roots of an equation over an interval",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			domain, err := sample.NewRange(min, max)
			if err != nil {
				return err
			}
			c := newCalculator()
			roots, err := c.Solve(c.Parse(strings.Join(args, " ")), domain)
			if err != nil {
				return err
			}
			if len(roots) == 0 {
				fmt.Printf("no roots in [%g, %g]\n", min, max)
				return nil
			}
			for _, r := range roots {
				fmt.Printf("x = %g\n", r)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&min, "min", -10, "interval lower bound")
	cmd.Flags().Float64Var(&max, "max", 10, "interval upper bound")
	return cmd
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runRepl()
			return nil
		},
	}
}

func runRepl() {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	c := newCalculator()
	vars := map[string]*apd.Decimal{}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if quit := replCommand(&c, input); quit {
				return
			}
			continue
		}

		// "name = expr" binds; any other '=' goes to the solver.
		if lhs, rhs, ok := splitAssignment(input); ok {
			res, err := c.Evaluate(rhs, vars)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(err.Error()))
				continue
			}
			vars[lhs] = res.Value
			fmt.Println(green(lhs + " = " + res.DisplayValue))
			continue
		}

		res, err := c.Evaluate(input, vars)
		if err != nil {
			// Equations are not expressions; hand them to the solver.
			if roots, serr := solveInline(c, input); serr == nil {
				printRoots(roots)
				continue
			}
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(blue(res.DisplayValue))
	}
}

// replCommand dispatches ':' commands; returns true to exit.
func replCommand(c **calc.Calculator, input string) bool {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Print(helpText)
	case ":prec":
		n, err := strconv.ParseUint(rest, 10, 32)
		if err != nil || n < 1 {
			fmt.Fprintln(os.Stderr, red("usage: :prec <digits>"))
			return false
		}
		flagPrecision = uint32(n)
		*c = newCalculator()
		fmt.Println(green(fmt.Sprintf("precision set to %d digits", n)))
	case ":simplify":
		printRewrite((*c).Simplify(rest))
	case ":diff":
		expr, name := splitTrailingVar(rest)
		printRewrite((*c).Differentiate(expr, name))
	case ":int":
		expr, name := splitTrailingVar(rest)
		printRewrite((*c).Integrate(expr, name))
	case ":solve":
		roots, err := solveInline(*c, rest)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return false
		}
		printRoots(roots)
	case ":plot":
		if err := plotInline(*c, rest); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
	default:
		fmt.Println("unknown command. Type :help for commands.")
	}
	return false
}

func printRewrite(s string, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return
	}
	fmt.Println(blue(s))
}

func printRoots(roots []float64) {
	if len(roots) == 0 {
		fmt.Println("no roots in [-10, 10]")
		return
	}
	for _, r := range roots {
		fmt.Println(blue(fmt.Sprintf("x = %g", r)))
	}
}

func solveInline(c *calc.Calculator, input string) ([]float64, error) {
	domain, err := sample.NewRange(-10, 10)
	if err != nil {
		return nil, err
	}
	return c.Solve(c.Parse(input), domain)
}

func plotInline(c *calc.Calculator, input string) error {
	domain, err := sample.NewRange(-10, 10)
	if err != nil {
		return err
	}
	g, err := c.Render(c.Parse(input), sample.Func2D, domain, sample.Range{}, 144)
	if err != nil {
		return err
	}
	fmt.Print(asciiRender(g, 72, 20))
	return nil
}

// splitAssignment recognizes "name = expr" where name is a single
// non-reserved identifier.
func splitAssignment(input string) (name, expr string, ok bool) {
	lhs, rhs, ok := strings.Cut(input, "=")
	if !ok || strings.HasPrefix(rhs, "=") {
		return "", "", false
	}
	toks, err := token.Tokenize(lhs)
	if err != nil || len(toks) != 1 || toks[0].Kind != token.Identifier {
		return "", "", false
	}
	return toks[0].Text, strings.TrimSpace(rhs), true
}

// splitTrailingVar splits ":diff sin(x*y) y" style input into the
// expression and the trailing variable name, defaulting to x.
func splitTrailingVar(rest string) (expr, name string) {
	i := strings.LastIndexByte(rest, ' ')
	if i < 0 {
		return rest, "x"
	}
	tail := rest[i+1:]
	toks, err := token.Tokenize(tail)
	if err != nil || len(toks) != 1 || toks[0].Kind != token.Identifier {
		return rest, "x"
	}
	return strings.TrimSpace(rest[:i]), tail
}
