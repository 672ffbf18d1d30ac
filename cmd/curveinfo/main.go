package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/PyLops/curvelops"
	"github.com/PyLops/curvelops/bridge"
	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/fdcttest"
	"github.com/PyLops/curvelops/native"
	"github.com/PyLops/curvelops/native/wasmfdct"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to an FDCT core wasm file")
		fake        = flag.Bool("fake", false, "Use the built-in band-partition library instead of a wasm core")
		dimsStr     = flag.String("dims", "128x128", "Input shape, e.g. 128x128 or 32x32x32")
		scales      = flag.Int("scales", 4, "Number of decomposition scales")
		angles      = flag.Int("angles", 8, "Number of angles at the second-coarsest scale")
		all         = flag.Bool("all", true, "Use curvelets at the finest scale")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *wasmFile == "" && !*fake {
		fmt.Fprintln(os.Stderr, "Usage: curveinfo -wasm <core.wasm> [-dims 128x128] [-scales N] [-angles N]")
		fmt.Fprintln(os.Stderr, "       curveinfo -fake [-dims 128x128] ...")
		fmt.Fprintln(os.Stderr, "       curveinfo -fake -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			bridge.SetLogger(l)
			wasmfdct.SetLogger(l)
		}
	}

	ctx := context.Background()
	lib, cleanup, err := openLibrary(ctx, *wasmFile, *fake)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if *interactive {
		if err := runInteractive(lib, *dimsStr, *scales, *angles, *all); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(lib, *dimsStr, *scales, *angles, *all); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openLibrary(ctx context.Context, wasmFile string, fake bool) (native.Library, func(), error) {
	if fake {
		return fdcttest.New(nil), func() {}, nil
	}
	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}
	eng, err := wasmfdct.Open(ctx, data)
	if err != nil {
		return nil, nil, fmt.Errorf("load core: %w", err)
	}
	return eng, func() { eng.Close(ctx) }, nil
}

// parseDims parses shapes like "128x128" or "32x32x32".
func parseDims(s string) ([]int, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	dims := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid dims %q", s)
		}
		dims[i] = v
	}
	return dims, nil
}

func newPipeline(lib native.Library, rank int) (*bridge.Pipeline, error) {
	switch rank {
	case 2:
		return curvelops.New2D(lib)
	case 3:
		return curvelops.New3D(lib)
	default:
		return nil, fmt.Errorf("rank %d not supported, want 2 or 3", rank)
	}
}

func run(lib native.Library, dimsStr string, scales, angles int, all bool) error {
	dims, err := parseDims(dimsStr)
	if err != nil {
		return err
	}
	p, err := newPipeline(lib, len(dims))
	if err != nil {
		return err
	}

	g, err := p.QueryParams(dims, scales, angles, all)
	if err != nil {
		return err
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Println(render(g, dims, styled))
	return nil
}

var (
	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	scaleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// render prints the decomposition geometry, one block per scale. Styling is
// dropped when stdout is not a terminal.
func render(g *bridge.Geometry, dims []int, styled bool) string {
	style := func(st lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return st.Render(s)
	}

	var b strings.Builder
	b.WriteString(style(headStyle, "Curvelet geometry"))
	fmt.Fprintf(&b, " %s\n\n", shapeString(dims))
	fmt.Fprintf(&b, "Input elements:     %d\n", buffer.ElemCount(dims))
	fmt.Fprintf(&b, "Total coefficients: %d\n", g.TotalCoefficients())
	fmt.Fprintf(&b, "Scales:             %d\n\n", g.NumScales())

	for s, sc := range g.Scales {
		fmt.Fprintf(&b, "%s  %d angles\n",
			style(scaleStyle, fmt.Sprintf("scale %d", s)), len(sc.Angles))
		for a, ag := range sc.Angles {
			fmt.Fprintf(&b, "  angle %2d  %s  %s\n",
				a,
				style(dimStyle, shapeString(ag.Extents)),
				style(faintStyle, freqString(ag.Frequency)))
		}
	}
	return b.String()
}

func shapeString(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}

func freqString(freq []float64) string {
	parts := make([]string, len(freq))
	for i, f := range freq {
		parts[i] = strconv.FormatFloat(f, 'f', 3, 64)
	}
	return "f=(" + strings.Join(parts, ", ") + ")"
}
