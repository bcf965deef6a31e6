package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mirkobrombin/go-spin/v1/bench"
	"github.com/mirkobrombin/go-spin/v1/lock"
)

var (
	kinds   = flag.String("kind", "all", "Comma separated lock kinds, or all: "+kindList())
	threads = flag.String("threads", "1,2,4,8", "Comma separated goroutine counts")
	pairs   = flag.Int("pairs", bench.DefaultPairs, "Total lock/unlock pairs per run")
	bind    = flag.Bool("bind", false, "Pin each goroutine to its own CPU")
	trace   = flag.Bool("trace", false, "Print OpenTelemetry spans to stderr")
)

func main() {
	flag.Parse()

	ks, err := parseKinds(*kinds)
	if err != nil {
		log.Fatalf("invalid -kind: %v", err)
	}
	ts, err := parseThreads(*threads)
	if err != nil {
		log.Fatalf("invalid -threads: %v", err)
	}

	ctx := context.Background()
	if *trace {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
		if err != nil {
			log.Fatalf("trace exporter: %v", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
		defer func() { _ = tp.Shutdown(ctx) }()
		otel.SetTracerProvider(tp)
	}

	log.Printf("Starting benchmark: %d pairs per run, elision hints: %v", *pairs, lock.ElisionHinted())

	writeHeader(os.Stdout)

	for _, k := range ks {
		for _, t := range ts {
			// Every goroutine must do the same share of the work.
			n := *pairs / t * t
			res, err := bench.Run(ctx, bench.Config{Kind: k, Threads: t, Pairs: n, BindCPU: *bind})
			if err != nil {
				log.Printf("%v with %d threads: %v", k, t, err)
				writeErrorRow(os.Stdout, k, t)
				continue
			}
			writeRow(os.Stdout, res)
		}
	}
}

func writeHeader(w io.Writer) {
	fmt.Fprintf(w, "| %-8s | %-4s | %-7s | %-12s | %-14s | %-11s |\n", "Lock", "FIFO", "Threads", "Elapsed", "Pairs/sec", "Avg Latency")
	fmt.Fprintln(w, "|:---|:---|:---|:---|:---|:---|")
}

func writeRow(w io.Writer, res bench.Result) {
	fmt.Fprintf(w, "| %-8s | %-4s | %-7d | %-12s | %-14.0f | %-11s |\n",
		res.Kind, fifoMark(res.Kind), res.Threads, res.Elapsed.Round(time.Microsecond), res.Throughput(), res.AvgLatency())
}

func writeErrorRow(w io.Writer, k lock.Kind, threads int) {
	fmt.Fprintf(w, "| %-8s | %-4s | %-7d | %-12s | %-14s | %-11s |\n", k, fifoMark(k), threads, "ERROR", "-", "-")
}

func fifoMark(k lock.Kind) string {
	if k.FIFO() {
		return "yes"
	}
	return "no"
}

func kindList() string {
	names := make([]string, 0, len(lock.Kinds()))
	for _, k := range lock.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ",")
}

func parseKinds(s string) ([]lock.Kind, error) {
	if strings.TrimSpace(s) == "all" {
		return lock.Kinds(), nil
	}
	var out []lock.Kind
	for _, name := range strings.Split(s, ",") {
		k, err := lock.ParseKind(name)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func parseThreads(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("thread count must be positive, got %d", n)
		}
		out = append(out, n)
	}
	return out, nil
}
