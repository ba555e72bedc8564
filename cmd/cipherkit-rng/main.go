package main

import (
	"fmt"
	"os"

	pkgversion "github.com/qseclabs/cipherkit/pkg/version"
)

// Build-time variables (set via -ldflags)
var (
	version   = ""        // Set via -ldflags "-X main.version=x.y.z"
	buildTime = "unknown" // Set via -ldflags "-X main.buildTime=..."
	gitCommit = "unknown" // Set via -ldflags "-X main.gitCommit=..."
)

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.String()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "gen":
		genCommand(os.Args[2:])
	case "bench":
		benchCommand()
	case "version":
		fmt.Printf("cipherkit-rng version %s\n", getVersion())
		if buildTime != "unknown" {
			fmt.Printf("Built: %s\n", buildTime)
		}
		if gitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", gitCommit)
		}
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cipherkit-rng - random byte generation and benchmark tool

USAGE:
    cipherkit-rng <command> [options]

COMMANDS:
    gen        Emit random bytes to stdout (hex)
               -source acp|csp|csg|bcr   (default acp)
               -n <bytes>                (default 32)
    bench      Benchmark the generator engines
    version    Print version information
    help       Show this help`)
}
