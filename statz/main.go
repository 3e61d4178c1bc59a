package main

import (
	. "fmt"
	"github.com/dterei/gotsc"
	"github.com/klauspost/cpuid/v2"
	"github.com/minio/sha256-simd"
	"github.com/olekukonko/tablewriter"
	"github.com/p7r0x7/pwdigest"
	"golang.org/x/sys/cpu"
	"io"
	"os"
	"runtime"
	"testing"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Password lengths worth timing: a short password, a long one, and two passphrase files.
var lengths = [...]int{8, 64, 1 << 10, 64 << 10}

// profile is one way of calling pwdigest whose cost is worth telling apart from the others.
type profile struct {
	name string
	opts []pwdigest.Option
}

var profiles = []profile{
	{"canonical", nil},
	{"canonical, salted", []pwdigest.Option{pwdigest.WithSalt("statz")}},
	{"generalized", []pwdigest.Option{pwdigest.WithModulus(1111)}},
	{"generalized, salted", []pwdigest.Option{pwdigest.WithSalt("statz"), pwdigest.WithModulus(1111)}},
	{"checksum off", []pwdigest.Option{pwdigest.WithModulus(1)}},
}

type measurement struct {
	mbps, cpb float64
	allocs    int64
}

func password(ln int) string {
	p := make([]byte, ln)
	newStream(uint64(ln)).fill(p)
	return string(p)
}

// digestBench times whole digests, the work GetHash does per call.
func digestBench(ln int, opts []pwdigest.Option) func(b *testing.B) {
	pw := password(ln)
	return func(b *testing.B) {
		b.SetBytes(int64(ln))
		b.ReportAllocs()
		for i := b.N; i > 0; i-- {
			pwdigest.Sum(pw, opts...)
		}
	}
}

// compressBench times the compressor alone; no profile can beat it.
func compressBench(ln int) func(b *testing.B) {
	p := []byte(password(ln))
	return func(b *testing.B) {
		b.SetBytes(int64(ln))
		b.ReportAllocs()
		for i := b.N; i > 0; i-- {
			sha256.Sum256(p)
		}
	}
}

// tscHz estimates the timestamp counter's frequency; it is 0 where no TSC can be read.
func tscHz() float64 {
	overhead := gotsc.TSCOverhead()
	if overhead == 0 {
		return 0
	}
	start := time.Now()
	tsc1 := gotsc.BenchStart()
	time.Sleep(20 * time.Millisecond)
	tsc2 := gotsc.BenchEnd()
	return float64(tsc2-tsc1-overhead) / time.Since(start).Seconds()
}

func measure(bench func(b *testing.B), hz float64) measurement {
	r := testing.Benchmark(bench)
	bps := float64(r.Bytes*int64(r.N)) / r.T.Seconds()
	m := measurement{mbps: bps / 1e6, allocs: r.AllocsPerOp()}
	if hz > 0 {
		m.cpb = hz / bps
	}
	return m
}

func (m measurement) String() string {
	s := Sprintf("%.1f MB/s", m.mbps)
	if m.cpb > 0 {
		s += Sprintf(", %.2f cpb", m.cpb)
	}
	return s + Sprintf(", %d allocs", m.allocs)
}

func byteSize(n int) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return Sprint(n>>20, "M")
	case n >= 1<<10 && n%(1<<10) == 0:
		return Sprint(n>>10, "K")
	default:
		return Sprint(n, "B")
	}
}

// table lays measurements out with one row per profile and one column per password length.
func table(w io.Writer, rows []string, cells [][]measurement) {
	t := tablewriter.NewWriter(w)
	header := []string{"profile"}
	for _, ln := range lengths {
		header = append(header, byteSize(ln))
	}
	t.SetHeader(header)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	t.SetAutoWrapText(false)
	for i, row := range rows {
		line := []string{row}
		for _, m := range cells[i] {
			line = append(line, m.String())
		}
		t.Append(line)
	}
	t.Render()
}

func throughput() {
	hz := tscHz()
	rows, cells := []string{}, [][]measurement{}
	for _, p := range profiles {
		row := make([]measurement, len(lengths))
		for i, ln := range lengths {
			row[i] = measure(digestBench(ln, p.opts), hz)
		}
		rows, cells = append(rows, p.name), append(cells, row)
	}
	row := make([]measurement, len(lengths))
	for i, ln := range lengths {
		row[i] = measure(compressBench(ln), hz)
	}
	rows, cells = append(rows, "sha256-simd only"), append(cells, row)
	table(os.Stdout, rows, cells)
}

// cpuReport describes the features that decide which SHA-256 block function sha256-simd runs.
func cpuReport() string {
	sha := cpuid.CPU.Supports(cpuid.SHA) || cpuid.CPU.Supports(cpuid.SHA2)
	avx2 := cpu.X86.HasAVX2
	if runtime.GOARCH == "arm64" {
		sha = sha || cpu.ARM64.HasSHA2
	}
	return Sprintf("%s (%d threads)\nSHA extensions: %t  AVX2: %t\n",
		cpuid.CPU.BrandName, cpuid.CPU.LogicalCores, sha, avx2)
}

func main() {
	Printf("Running Statz on %d CPUs!\n%s/%s\n%s\n", runtime.NumCPU(), runtime.GOOS, runtime.GOARCH,
		cpuReport())
	t := time.Now()

	monobit()
	Println()
	throughput()

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
