// oceantool is a headless CLI for the ocean simulation.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "render":
		err = cmdRender(args, os.Stdout)
	case "bench":
		err = cmdBench(args, os.Stdout)
	case "twiddle":
		err = cmdTwiddle(args, os.Stdout)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `oceantool - Tessendorf ocean simulation utility

Usage:
  oceantool <command> [options]

Commands:
  render   Write the height field at time t as a grayscale PNG
  bench    Time a number of simulation steps
  twiddle  Print the butterfly table for a grid size
  config   Print the effective configuration, or save it

Common options:
  -config <file>   YAML config (defaults are used otherwise)
  -size <n>        Grid size override
  -seed <n>        Random seed override
  -backend <name>  cpu, serial or opencl
  -v               Log to stderr

Examples:
  oceantool render -t 12.5 -o ocean.png
  oceantool bench -size 512 -steps 200 -backend serial
  oceantool twiddle -size 8
  oceantool config -save ./config.yaml`)
}
