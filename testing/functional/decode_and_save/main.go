package main

import (
	"fmt"
	"os"

	"github.com/bgrewell/usage"

	gpi "github.com/GravisZro/gpi-kit"
	internal "github.com/GravisZro/gpi-kit/internal/testing"
	"github.com/GravisZro/gpi-kit/pkg/logging"
)

func main() {

	u := usage.NewUsage(
		usage.WithApplicationName("decode_and_save"),
		usage.WithApplicationDescription("decode_and_save is a functional testing application that is part of gpi-kit and is designed to verify that decoding a GPI file and re-encoding it reproduces the original bytes."),
	)
	help := u.AddBooleanOption("h", "help", false, "Display this help message", "", nil)
	input := u.AddArgument(1, "input", "The input GPI file to run the tests against", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	if input == nil || *input == "" {
		u.PrintError(fmt.Errorf("location of the input gpi file <input> must be provided"))
		os.Exit(1)
	}

	logger := logging.NewSimpleLogger(os.Stderr, logging.TRACE, true)
	file, err := gpi.Open(*input, gpi.WithLogger(logger))
	if err != nil {
		fmt.Printf("Failed to open GPI file: %s\n", err)
		os.Exit(1)
	}

	counts := internal.GetRecordCounts(file)
	for kind, count := range counts {
		fmt.Printf("%-20s %d\n", kind, count)
	}

	if err := internal.ValidateRoundTrip(*input); err != nil {
		fmt.Printf("Round trip failed: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Round trip OK")
}
