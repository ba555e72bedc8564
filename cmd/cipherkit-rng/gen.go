package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/qseclabs/cipherkit/pkg/bcr"
	"github.com/qseclabs/cipherkit/pkg/csg"
	"github.com/qseclabs/cipherkit/pkg/keymat"
	"github.com/qseclabs/cipherkit/pkg/metrics"
	"github.com/qseclabs/cipherkit/pkg/provider"
)

// genCommand emits random bytes from the selected source.
func genCommand(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	source := fs.String("source", "acp", "entropy source: acp, csp, csg, bcr")
	n := fs.Int("n", 32, "number of bytes")
	fs.Parse(args)

	if *n <= 0 {
		fmt.Fprintln(os.Stderr, "gen: -n must be positive")
		os.Exit(1)
	}

	ctx := context.Background()
	out := make([]byte, *n)

	switch *source {
	case "acp":
		_, end := metrics.StartSpan(ctx, metrics.SpanEntropyCollect)
		acp, err := provider.NewACP()
		end(err)
		if err != nil {
			fail(err)
		}
		fmt.Fprintf(os.Stderr, "sources: %v\n", acp.Sources())
		if err := acp.GetBytes(out); err != nil {
			fail(err)
		}
	case "csp":
		if err := provider.NewCSP().GetBytes(out); err != nil {
			fail(err)
		}
	case "csg":
		acp, err := provider.NewACP()
		if err != nil {
			fail(err)
		}
		gen, err := csg.New(csg.SHAKE256, csg.WithProvider(acp))
		if err != nil {
			fail(err)
		}
		seed := make([]byte, 64)
		if err := acp.GetBytes(seed); err != nil {
			fail(err)
		}
		if err := gen.Initialize(keymat.KeyMaterial{Key: seed}); err != nil {
			fail(err)
		}
		_, end := metrics.StartSpan(ctx, metrics.SpanGenerate)
		err = gen.Generate(out)
		end(err)
		if err != nil {
			fail(err)
		}
	case "bcr":
		rng, err := bcr.New(bcr.AHX, bcr.ProviderCSP, true)
		if err != nil {
			fail(err)
		}
		if err := rng.GetBytes(out); err != nil {
			fail(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "gen: unknown source %q\n", *source)
		os.Exit(1)
	}

	fmt.Println(hex.EncodeToString(out))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "gen: %v\n", err)
	os.Exit(1)
}
