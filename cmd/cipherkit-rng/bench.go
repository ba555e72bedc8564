package main

import (
	"fmt"
	"time"

	"github.com/qseclabs/cipherkit/pkg/bcr"
	"github.com/qseclabs/cipherkit/pkg/csg"
	"github.com/qseclabs/cipherkit/pkg/keymat"
	"github.com/qseclabs/cipherkit/pkg/shx"
)

// benchCommand runs quick throughput measurements over the engines.
func benchCommand() {
	const total = 16 << 20

	fmt.Println("engine            throughput")

	// CSG sequential
	gen, err := csg.New(csg.SHAKE256)
	if err == nil {
		seed := make([]byte, 64)
		_ = gen.Initialize(keymat.KeyMaterial{Key: seed})
		buf := make([]byte, 65536)
		start := time.Now()
		for n := 0; n < total; n += len(buf) {
			_ = gen.Generate(buf)
		}
		report("CSG (SHAKE-256)", total, time.Since(start))
	}

	// BCR over AHX
	seed := make([]byte, 48)
	rng, err := bcr.NewWithSeed(seed, bcr.AHX, true)
	if err == nil {
		buf := make([]byte, 65536)
		start := time.Now()
		for n := 0; n < total; n += len(buf) {
			_ = rng.GetBytes(buf)
		}
		report("BCR (AHX)", total, time.Since(start))
	}

	// SHX bulk encryption
	cpr, err := shx.New()
	if err == nil {
		key := make([]byte, 32)
		_ = cpr.Initialize(true, shx.KeyMaterial{Key: key})
		in := make([]byte, 256)
		out := make([]byte, 256)
		start := time.Now()
		for n := 0; n < total; n += len(in) {
			_ = cpr.Transform2048(in, 0, out, 0)
		}
		report("SHX Transform2048", total, time.Since(start))
	}
}

func report(name string, bytes int, elapsed time.Duration) {
	mbps := float64(bytes) / elapsed.Seconds() / (1 << 20)
	fmt.Printf("%-17s %8.1f MB/s\n", name, mbps)
}
