// Command optica is the Optica language's CLI entry point: solve a model
// file, run the benchmark suite, or drop into a line-oriented REPL (spec §6,
// grounded on the source language's main.rs/cli.rs — hand-rolled flag
// parsing rather than a cobra/pflag dependency, since nothing in this
// module's dependency pack actually imports one; see DESIGN.md).
package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/yut0takagi/Optica/bench"
	"github.com/yut0takagi/Optica/config"
	"github.com/yut0takagi/Optica/logging"
	"github.com/yut0takagi/Optica/model"
	"github.com/yut0takagi/Optica/plotting"
	"github.com/yut0takagi/Optica/record"
	"github.com/yut0takagi/Optica/solver"
)

const version = "0.1.0"

type command int

const (
	cmdSolve command = iota
	cmdBench
	cmdRepl
	cmdVersion
	cmdHelp
)

type args struct {
	command command
	file    string
	dim     int
	method  solver.Method
	maxIter int
	threads int
	verbose bool
	quiet   bool
	// record, when non-empty, is a sqlite3 path that the solve/bench
	// convergence trace is written to via optica/record (spec §3.A); a PNG
	// convergence curve is rendered alongside it via optica/plotting.
	record string
}

func numCPUs() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// parseArgs mirrors cli.rs's Args::parse: the first token picks the
// subcommand (bare "solve"/"bench"/"repl"/"version"/"help", or a file path
// treated as an implicit "solve"), followed by -m/-i/-t/-v/-q flags scanned
// independently of the subcommand's own position.
func parseArgs(raw []string) (args, error) {
	a := args{
		command: cmdHelp,
		method:  solver.MethodAuto,
		maxIter: config.DefaultMaxIter,
		threads: numCPUs(),
	}
	if len(raw) == 0 {
		return a, nil
	}

	startIdx := 1
	switch raw[0] {
	case "solve":
		if len(raw) < 2 {
			return args{}, fmt.Errorf("error: no input file")
		}
		a.command = cmdSolve
		a.file = raw[1]
		startIdx = 2
	case "bench":
		a.command = cmdBench
		a.dim = 100
		if len(raw) >= 2 {
			if d, err := strconv.Atoi(raw[1]); err == nil {
				a.dim = d
			}
		}
	case "repl":
		a.command = cmdRepl
	case "version", "-v", "--version":
		a.command = cmdVersion
	case "help", "-h", "--help":
		a.command = cmdHelp
	default:
		a.command = cmdSolve
		a.file = raw[0]
	}

	for i := startIdx; i < len(raw); i++ {
		switch raw[i] {
		case "-m", "--method":
			if i+1 < len(raw) {
				a.method = solver.Method(raw[i+1])
				i++
			}
		case "-i", "--iter":
			if i+1 < len(raw) {
				if v, err := strconv.Atoi(raw[i+1]); err == nil {
					a.maxIter = v
				}
				i++
			}
		case "-t", "--threads":
			if i+1 < len(raw) {
				if v, err := strconv.Atoi(raw[i+1]); err == nil {
					a.threads = v
				}
				i++
			}
		case "-v", "--verbose":
			a.verbose = true
		case "-q", "--quiet":
			a.quiet = true
		case "-r", "--record":
			if i+1 < len(raw) {
				a.record = raw[i+1]
				i++
			}
		}
	}
	return a, nil
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch a.command {
	case cmdSolve:
		cmdRunSolve(a.file, a)
	case cmdBench:
		cmdRunBench(a.dim, a.threads, a.record)
	case cmdRepl:
		cmdRunRepl()
	case cmdVersion:
		fmt.Printf("optica %s\n", version)
	case cmdHelp:
		printHelp()
	}
}

func printHelp() {
	fmt.Print(`optica - Ultra-fast Optimization DSL

USAGE:
    optica <file.optica> [OPTIONS]
    optica solve <file.optica> [OPTIONS]
    optica bench [DIM]
    optica repl

OPTIONS:
    -m, --method <METHOD>   de, pso, hybrid (default: auto)
    -i, --iter <N>          Max iterations (default: 1000)
    -t, --threads <N>       Threads (default: auto)
    -v, --verbose           Verbose output
    -q, --quiet             Quiet mode
    -r, --record <PATH>     Record the convergence trace to a sqlite3 file
                            at PATH and render a PNG curve alongside it

EXAMPLES:
    optica model.optica
    optica solve model.optica -m de -i 2000
    optica bench 100
`)
}

func sidecarJSONPath(file string) string {
	dir := filepath.Dir(file)
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return filepath.Join(dir, stem+".json")
}

func cmdRunSolve(file string, a args) {
	source, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()

	m, err := model.Parse(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		os.Exit(1)
	}

	jsonPath := sidecarJSONPath(file)
	if data, err := os.ReadFile(jsonPath); err == nil {
		if err := m.LoadJSONInto(data); err != nil {
			logging.Warnf("failed to load json %s: %v", jsonPath, err)
		}
	}

	if m.Dim == 0 {
		fmt.Fprintln(os.Stderr, "error: no variables")
		os.Exit(1)
	}

	if a.verbose {
		logging.Infof("[optica] dim=%d, method=%s, threads=%d", m.Dim, a.method, a.threads)
	}

	var trace solver.Trace
	var rec *record.Recorder
	if a.record != "" {
		var err error
		rec, err = record.Open(a.record)
		if err != nil {
			logging.Warnf("failed to open record db %s: %v", a.record, err)
		} else {
			defer rec.Close()
			runID := filepath.Base(file)
			half := a.maxIter / 2
			trace = func(phase string, gen int, bestFitness float64) {
				// Hybrid's PSO phase restarts its generation counter at 0
				// (hybrid.Trace); offset it past the DE phase's budget so
				// one run id yields one monotonic convergence trace.
				g := gen
				if phase == "pso" {
					g += half
				}
				if err := rec.RecordGeneration(runID, g, bestFitness); err != nil {
					logging.Warnf("failed to record generation: %v", err)
				}
			}
		}
	}

	res, err := solver.Dispatch(m, a.method, a.maxIter, a.threads, uint64(time.Now().UnixNano()), nil, trace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if rec != nil {
		runID := filepath.Base(file)
		if gens, fits, err := rec.History(runID); err == nil && len(gens) > 0 {
			pngPath := strings.TrimSuffix(a.record, filepath.Ext(a.record)) + ".png"
			if err := plotting.ConvergenceCurve(pngPath, gens, fits); err != nil {
				logging.Warnf("failed to render convergence curve: %v", err)
			}
		}
	}

	elapsed := time.Since(start)
	obj := res.Fitness
	if m.Maximize {
		obj = -obj
	}

	if a.quiet {
		fmt.Printf("%.6e\n", obj)
		return
	}
	printResult(m, res.X, obj, res.Fitness, res.Iterations, elapsed)
}

func printResult(m *model.Model, best []float64, obj, fit float64, iters int, elapsed time.Duration) {
	status := "feasible"
	if math.Abs(fit) < config.Tolerance {
		status = "optimal"
	}
	fmt.Printf("\nStatus: %s\n", status)
	fmt.Printf("Objective: %.6e\n", obj)
	fmt.Printf("Time: %.3fs\n", elapsed.Seconds())
	fmt.Printf("Iterations: %d\n", iters)

	if len(m.VarNames) > 0 {
		fmt.Println("\nVariables:")
		for i, name := range m.VarNames {
			if math.Abs(best[i]) > config.DisplayTolerance {
				fmt.Printf("  %s = %.6f\n", name, best[i])
			}
		}
	}
}

func cmdRunBench(dim, threads int, recordPath string) {
	fmt.Printf("Benchmark: dim=%d, threads=%d\n", dim, threads)
	fmt.Println(strings.Repeat("-", 50))

	fn := bench.Sphere{NDim: dim}
	m := bench.AsModel(fn)

	var rec *record.Recorder
	if recordPath != "" {
		var err error
		rec, err = record.Open(recordPath)
		if err != nil {
			logging.Warnf("failed to open record db %s: %v", recordPath, err)
			rec = nil
		} else {
			defer rec.Close()
		}
	}

	// warmup
	solver.Dispatch(m, solver.MethodDE, 10, 1, 1, nil)

	start := time.Now()
	var deTrace solver.Trace
	if rec != nil {
		deTrace = func(phase string, gen int, bestFitness float64) {
			rec.RecordGeneration(fn.Name(), gen, bestFitness)
		}
	}
	de, _ := solver.Dispatch(m, solver.MethodDE, 500, 1, 1, nil, deTrace)
	deTime := time.Since(start).Seconds() * 1000

	fmt.Printf("DE:        %7.2fms  f=%.2e\n", deTime, de.Fitness)

	if rec != nil {
		if gens, fits, err := rec.History(fn.Name()); err == nil && len(gens) > 0 {
			pngPath := strings.TrimSuffix(recordPath, filepath.Ext(recordPath)) + ".png"
			if err := plotting.ConvergenceCurve(pngPath, gens, fits); err != nil {
				logging.Warnf("failed to render convergence curve: %v", err)
			}
		}
	}

	start = time.Now()
	dePar, _ := solver.Dispatch(m, solver.MethodDE, 500, threads, 1, nil)
	deParTime := time.Since(start).Seconds() * 1000
	fmt.Printf("DE(%dT):   %7.2fms  f=%.2e  %.1fx\n", threads, deParTime, dePar.Fitness, deTime/deParTime)

	start = time.Now()
	pso, _ := solver.Dispatch(m, solver.MethodPSO, 500, 1, 1, nil)
	psoTime := time.Since(start).Seconds() * 1000
	fmt.Printf("PSO:       %7.2fms  f=%.2e\n", psoTime, pso.Fitness)

	start = time.Now()
	hy, _ := solver.Dispatch(m, solver.MethodHybrid, 500, threads, 1, nil)
	hybridTime := time.Since(start).Seconds() * 1000
	fmt.Printf("Hybrid:    %7.2fms  f=%.2e\n", hybridTime, hy.Fitness)

	fmt.Printf("\nBest: DE(%dT) = %.2fms\n", threads, deParTime)

	fmt.Println("\nSuite (DE, 500 iter):")
	fmt.Println(strings.Repeat("-", 50))
	pass, fail := 0, 0
	for _, f := range bench.AllFuncs {
		fm := bench.AsModel(f)
		res, _ := solver.Dispatch(fm, solver.MethodDE, 500, 1, 1, nil)
		ok := res.Fitness <= f.Tol()
		status := "FAIL"
		if ok {
			status = "ok"
			pass++
		} else {
			fail++
		}
		fmt.Printf("  %-16s f=%12.4e  tol=%12.4e  %s\n", f.Name(), res.Fitness, f.Tol(), status)
	}
	fmt.Printf("\n%d/%d converged within tolerance\n", pass, pass+fail)
}

func cmdRunRepl() {
	fmt.Printf("optica %s REPL\n", version)
	fmt.Println("Commands: solve, bench, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(">>> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "quit" || line == "exit":
			return
		case line == "bench":
			cmdRunBench(100, numCPUs(), "")
		case strings.HasPrefix(line, "bench "):
			if dim, err := strconv.Atoi(strings.TrimSpace(line[6:])); err == nil {
				cmdRunBench(dim, numCPUs(), "")
			}
		case strings.HasPrefix(line, "solve "):
			file := strings.TrimSpace(line[6:])
			cmdRunSolve(file, args{
				method:  solver.MethodAuto,
				maxIter: config.DefaultMaxIter,
				threads: numCPUs(),
			})
		default:
			fmt.Printf("Unknown command: %s\n", line)
		}
	}
}
