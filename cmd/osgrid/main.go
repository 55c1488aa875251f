// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.18
//

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	m "github.com/mkhts/osgrid"
	"golang.org/x/exp/slices"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		m.PrintE(err)
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt) error {

	// Prepare input
	in, err := prepareInput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare input: %w", err)
	}
	defer in.Close()

	// Prepare output file
	pos, err := prepareOutput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	defer closeOutput(pos)

	// Print header
	if !args.noPosHeader {
		printPosHeader(pos, os.Args[0], args)
	}

	// Process positions
	nerr := processLines(args, in, pos)
	if nerr > 0 {
		m.PrintD(1, "%d lines could not be converted\n", nerr)
	}
	return nil
}

// Prepare input: the -l position or the input file
func prepareInput(args cmdOpt) (io.ReadCloser, error) {
	if args.inFn == "" {
		return io.NopCloser(strings.NewReader(args.point)), nil
	}
	f, err := os.Open(args.inFn)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return f, nil
}

// Prepare output file
func prepareOutput(args cmdOpt) (io.WriteCloser, error) {

	// Use stdout if no output file is specified
	if len(args.posFn) == 0 {
		return &nopCloser{os.Stdout}, nil
	}

	// Create output file
	posf, err := os.Create(args.posFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return posf, nil
}

// Close output file
func closeOutput(pos io.WriteCloser) {
	if pos != nil {
		pos.Close()
	}
}

// Process every line of the input, returning the number of lines that failed
func processLines(args cmdOpt, in io.Reader, pos io.Writer) int {
	nerr := 0
	sc := bufio.NewScanner(in)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())

		// Skip blank lines and comments
		if len(line) == 0 || slices.Contains([]byte("%#"), line[0]) {
			continue
		}

		m.PrintD(2, "\n>>> line %d: %s\n", ln, line)
		var err error
		if args.inverse {
			err = processGrid(args, line, pos)
		} else {
			err = processLLH(args, line, pos)
		}
		if err != nil {
			m.PrintA("line %d: error processing position: %s\n", ln, err.Error())
			nerr++
			continue
		}
	}
	if err := sc.Err(); err != nil {
		m.PrintE(err)
		nerr++
	}
	return nerr
}

// WGS84 "lat lon hei" -> National Grid
func processLLH(args cmdOpt, line string, pos io.Writer) error {
	var llh m.PosLLH
	if err := llh.Set(line); err != nil {
		return fmt.Errorf("invalid position %q: %w", line, err)
	}
	lat, lon := m.ToDeg(llh.Lat), m.ToDeg(llh.Lon)

	sol, err := m.GeodeticToGrid(lat, lon, llh.Hei, args.grid)
	if err != nil {
		return err
	}
	e, n, h, err := sol.Integer(args.grid.Rounding)
	if err != nil {
		return err
	}
	printGrid(pos, llh, sol, e, n, h)
	return nil
}

// National Grid "easting northing elevation" -> WGS84
func processGrid(args cmdOpt, line string, pos io.Writer) error {
	f := strings.Fields(line)
	if len(f) != 3 {
		return fmt.Errorf("want 3 fields (easting northing elevation), got %d", len(f))
	}
	var v [3]float64
	for i := range v {
		var err error
		if v[i], err = strconv.ParseFloat(f[i], 64); err != nil {
			return err
		}
	}

	llh, err := m.GridToGeodetic(v[0], v[1], v[2], args.grid)
	if err != nil {
		return err
	}
	fmt.Fprintf(pos, "%12.3f %12.3f %10.4f %14.9f %14.9f %10.4f\n", v[0], v[1], v[2], m.ToDeg(llh.Lat), m.ToDeg(llh.Lon), llh.Hei)
	return nil
}

// nopCloser - WriteCloser that ignores close operations
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Structure to hold command line argument information
type cmdOpt struct {
	inFn        string
	posFn       string
	optFn       string
	point       string
	inverse     bool
	noPosHeader bool
	grid        *m.GridOpt
}

// Parse command line arguments
func parseArgs(fs *flag.FlagSet, argv []string) (a cmdOpt, err error) {
	fs.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options] -l "lat lon hei"          (single WGS84 position)
	%s [Options] positions.txt             (one "lat lon hei" per line)
	%s [Options] -inv grid.txt             (one "easting northing elevation" per line)

[Options]
`, filepath.Base(os.Args[0]), filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	grid := m.NewGridOpt()
	var point m.PosLLH
	fs.Var(&point, "l", "WGS84 latitude/longitude/ellipsoidal height. Enclose in quotes like -l \"52.657977 1.716038 0\"")
	fs.StringVar(&a.posFn, "o", "", "Output file path. If not specified, output to stdout.")
	fs.BoolVar(&a.noPosHeader, "nh", false, "Do not output header section.")
	fs.BoolVar(&a.inverse, "inv", false, "Input is National Grid easting/northing/Airy elevation; output WGS84.")
	fs.StringVar(&a.optFn, "c", "", "YAML file with conversion options. Command line options take precedence.")
	fs.Float64Var(&grid.Tolerance, "t", grid.Tolerance, "Latitude convergence threshold [rad]")
	fs.IntVar(&grid.MaxIter, "i", grid.MaxIter, "Maximum number of latitude iterations")
	fs.BoolVar(&grid.QuadrantAware, "q", grid.QuadrantAware, "Recover the longitude with atan2 instead of atan")
	fs.BoolVar(&grid.CheckBounds, "b", grid.CheckBounds, "Reject positions outside Great Britain")
	fs.Var(&grid.Rounding, "r", "Integer conversion of the results. trunc(truncate toward zero) or round(nearest)")
	var dbg int
	fs.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. 0(OFF), 1(display), 2(detailed display), 3(iterations), 4(matrices)")
	if err = fs.Parse(argv); err != nil {
		return a, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	switch {
	case set["l"] && fs.NArg() == 0:
		if a.inverse {
			return a, fmt.Errorf("-l cannot be combined with -inv")
		}
		a.point = fmt.Sprintf("%.12f %.12f %.4f", m.ToDeg(point.Lat), m.ToDeg(point.Lon), point.Hei)
	case !set["l"] && fs.NArg() == 1:
		a.inFn = fs.Arg(0)
	default:
		return a, fmt.Errorf("specify either -l or one input file")
	}

	// Options from file, overridden by explicit flags
	if a.optFn != "" {
		fileOpt, err := loadGridOpt(a.optFn)
		if err != nil {
			return a, err
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "t":
				fileOpt.Tolerance = grid.Tolerance
			case "i":
				fileOpt.MaxIter = grid.MaxIter
			case "q":
				fileOpt.QuadrantAware = grid.QuadrantAware
			case "b":
				fileOpt.CheckBounds = grid.CheckBounds
			case "r":
				fileOpt.Rounding = grid.Rounding
			}
		})
		grid = fileOpt
	}
	if grid.MaxIter <= 0 {
		return a, fmt.Errorf("maximum number of iterations must be positive: %d", grid.MaxIter)
	}
	a.grid = grid

	m.DBG_ = dbg
	if m.DBG_ >= 1 {
		m.PrintA("opt: tolerance=%g, max_iter=%d, quadrant_aware=%v, check_bounds=%v, rounding=%s\n",
			grid.Tolerance, grid.MaxIter, grid.QuadrantAware, grid.CheckBounds, grid.Rounding.String())
	}
	return
}

// Print output file header
func printPosHeader(pos io.Writer, cmd string, args cmdOpt) {
	fmt.Fprintf(pos, "%% program   : %s\n", filepath.Base(cmd))
	if args.inFn != "" {
		fmt.Fprintf(pos, "%% inp file  : %s\n", args.inFn)
	}
	fmt.Fprintf(pos, "%% tolerance : %g rad (max %d loops)\n", args.grid.Tolerance, args.grid.MaxIter)
	fmt.Fprintf(pos, "%% rounding  : %s\n", args.grid.Rounding.String())
	if args.inverse {
		fmt.Fprintf(pos, "%%     easting     northing  elev(m)  latitude(deg) longitude(deg)  height(m)\n")
	} else {
		fmt.Fprintf(pos, "%%  latitude(deg) longitude(deg)  height(m)    easting   northing  elev(m)     easting(m)    northing(m)    elev(m) it\n")
	}
}

// Output one converted position
func printGrid(pos io.Writer, llh m.PosLLH, sol *m.GridSol, e, n uint32, h int32) {
	fmt.Fprintf(pos, "%15.9f %14.9f %10.4f %10d %10d %8d %14.3f %14.3f %10.4f %2d\n",
		m.ToDeg(llh.Lat), m.ToDeg(llh.Lon), llh.Hei, e, n, h, sol.Grid.E, sol.Grid.N, sol.Elev, sol.Iter)
}
