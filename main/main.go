// Main prints the tagged pointer layouts described by a TOML
// plan file.
//
//	[[pointer]]
//	name = "node"
//	tag_bits = 2
//	align = 8
//	safe_to_load_after = true
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/rawbytedev/smallptr"
	"github.com/rawbytedev/smallptr/internal/plan"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

var formats = map[string]bool{"table": true, "cbor": true}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	var (
		planFile = flag.String("plan", "", "Path to the TOML plan file")
		format   = flag.String("format", "table", "Output format: table or cbor")
		out      = flag.String("o", "", "Write output to this file instead of stdout")
		verbose  = flag.Bool("v", false, "Log layout computation")
	)
	flag.Parse()

	if *planFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: go run ./main -plan <file.toml> [-format table|cbor] [-o file] [-v]")
		return 1
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		logger = l
	}
	defer logger.Sync()
	smallptr.SetLogger(logger)

	if err := run(logger, *planFile, *format, *out); err != nil {
		logger.Error("plan failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(logger *zap.Logger, planFile, format, out string) (err error) {
	if !formats[format] {
		return xerrors.Errorf("unknown format %q", format)
	}

	p, err := plan.Load(planFile)
	if err != nil {
		return err
	}
	logger.Debug("plan loaded", zap.String("file", planFile), zap.Int("pointers", len(p.Pointers)))

	entries, err := plan.Compute(p)
	if err != nil {
		return err
	}

	var data []byte
	if format == "cbor" {
		if data, err = plan.EncodeCBOR(entries); err != nil {
			return xerrors.Errorf("encode report: %w", err)
		}
	} else {
		var buf bytes.Buffer
		if err := plan.WriteTable(&buf, entries); err != nil {
			return err
		}
		data = buf.Bytes()
	}

	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return xerrors.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = xerrors.Errorf("close output: %w", cerr)
		}
	}()
	if _, err := f.Write(data); err != nil {
		return xerrors.Errorf("write output: %w", err)
	}
	return nil
}
