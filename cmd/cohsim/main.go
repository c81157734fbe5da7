// Package main provides the entry point for cohsim.
// cohsim is a trace-driven simulator of snoopy bus cache coherence
// protocols (MSI, MESI, Dragon) over a fixed number of processors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/cache"
	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/coherence"
	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/report"
	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/trace"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cohsim <cache_size_bytes> <assoc> <block_size_bytes> <num_processors> <protocol> <trace_file>\n")
		fmt.Fprintf(os.Stderr, "  protocol: 0=MSI, 1=MESI, 2=Dragon\n")
	}
	flag.Parse()

	if flag.NArg() != 6 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := parseArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "cohsim: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "cohsim: %v\n", err)
		os.Exit(1)
	}
}

type runConfig struct {
	geometry  cache.Geometry
	numProcs  int
	protocol  coherence.Protocol
	traceFile string
	report    report.Config
}

func parseArgs(args []string) (runConfig, error) {
	cacheSize, err := strconv.Atoi(args[0])
	if err != nil {
		return runConfig{}, fmt.Errorf("bad cache size %q: %w", args[0], err)
	}
	assoc, err := strconv.Atoi(args[1])
	if err != nil {
		return runConfig{}, fmt.Errorf("bad associativity %q: %w", args[1], err)
	}
	blockSize, err := strconv.Atoi(args[2])
	if err != nil {
		return runConfig{}, fmt.Errorf("bad block size %q: %w", args[2], err)
	}
	numProcs, err := strconv.Atoi(args[3])
	if err != nil {
		return runConfig{}, fmt.Errorf("bad processor count %q: %w", args[3], err)
	}
	protocolID, err := strconv.Atoi(args[4])
	if err != nil {
		return runConfig{}, fmt.Errorf("bad protocol id %q: %w", args[4], err)
	}
	traceFile := args[5]

	if numProcs <= 0 {
		return runConfig{}, fmt.Errorf("number of processors must be positive, got %d", numProcs)
	}

	geometry, err := cache.NewGeometry(cacheSize, blockSize, assoc)
	if err != nil {
		return runConfig{}, err
	}

	protocol, err := coherence.ParseProtocol(protocolID)
	if err != nil {
		return runConfig{}, err
	}

	return runConfig{
		geometry:  geometry,
		numProcs:  numProcs,
		protocol:  protocol,
		traceFile: traceFile,
		report: report.Config{
			CacheSizeBytes: cacheSize,
			Associativity:  assoc,
			BlockSizeBytes: blockSize,
			NumProcessors:  numProcs,
			Protocol:       protocol,
			TraceFile:      traceFile,
		},
	}, nil
}

func run(cfg runConfig) error {
	f, err := os.Open(cfg.traceFile)
	if err != nil {
		return fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()

	engine := coherence.New(cfg.protocol, cfg.numProcs, cfg.geometry)

	reader := trace.NewReader(f)
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		var parseErr *trace.ParseError
		if errors.As(err, &parseErr) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading trace: %w", err)
		}
		if rec.ProcID < 0 || rec.ProcID >= cfg.numProcs {
			return fmt.Errorf("trace references processor %d, but only %d processors configured", rec.ProcID, cfg.numProcs)
		}
		engine.ProcessRequest(rec.ProcID, rec.Op, rec.Addr)
	}

	report.PrintAll(os.Stdout, cfg.report, engine)
	return nil
}
