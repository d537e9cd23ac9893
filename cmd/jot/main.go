// Copyright 2025 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Command jot decodes a stream of JSON values and re-emits each one in
// compact form, one value per line.  Input comes from files given as
// arguments or from stdin.  With --format=bson, each object value is
// written as a BSON document instead.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/xdg-go/jot"
)

const (
	formatJSON = "json"
	formatBSON = "bson"
)

type config struct {
	maxDepth int
	format   string
	stats    bool
	verbose  bool
	files    []string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	app := kingpin.New("jot", "Decode a stream of JSON values and re-emit each one in compact form.")
	cfg := &config{}
	app.Flag("max-depth", "Maximum allowed nesting depth.").Default("200").IntVar(&cfg.maxDepth)
	app.Flag("format", "Output format.").Default(formatJSON).EnumVar(&cfg.format, formatJSON, formatBSON)
	app.Flag("stats", "Log stream statistics when done.").BoolVar(&cfg.stats)
	app.Flag("verbose", "Enable debug logging.").Short('v').BoolVar(&cfg.verbose)
	app.Arg("file", "Input files; reads stdin when none or '-'.").StringsVar(&cfg.files)
	kingpin.MustParse(app.Parse(args))

	logger, err := newLogger(cfg.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	start := time.Now()
	var totalValues, totalBytes int64
	inputs := cfg.files
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	status := 0
	out := bufio.NewWriter(os.Stdout)
	for _, name := range inputs {
		values, consumed, err := processFile(logger, cfg, out, name)
		totalValues += values
		totalBytes += consumed
		if err != nil {
			logger.Error("decode failed", zap.String("file", name), zap.Error(err))
			status = 1
		}
	}
	if err := out.Flush(); err != nil {
		logger.Error("write failed", zap.Error(err))
		status = 1
	}

	if cfg.stats {
		logger.Info("stream complete",
			zap.Int64("values", totalValues),
			zap.String("consumed", humanize.Bytes(uint64(totalBytes))),
			zap.Duration("elapsed", time.Since(start)))
	}
	return status
}

// newLogger builds a stderr logger: human-readable debug output when
// verbose, JSON at info level otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func processFile(logger *zap.Logger, cfg *config, out *bufio.Writer, name string) (int64, int64, error) {
	if name == "-" {
		return echo(logger, cfg, out, os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	return echo(logger, cfg, out, f)
}

// echo decodes every value from in and re-emits it on out.  It returns
// the number of values emitted and the bytes consumed from in.
func echo(logger *zap.Logger, cfg *config, out *bufio.Writer, in io.Reader) (int64, int64, error) {
	dec := jot.NewDecoder(in)
	dec.MaxDepth(cfg.maxDepth)

	buf := make([]byte, 0, 256)
	var values int64
	for {
		v, err := dec.Decode()
		if err == io.EOF {
			return values, dec.InputOffset(), nil
		}
		if err != nil {
			return values, dec.InputOffset(), err
		}
		values++
		logger.Debug("decoded value",
			zap.Stringer("type", v.Type()),
			zap.Int64("offset", dec.InputOffset()))

		if cfg.format == formatBSON {
			if v.Type() != jot.TypeObject {
				return values, dec.InputOffset(), fmt.Errorf("bson output requires object values, got %s", v.Type())
			}
			raw, err := bson.Marshal(jot.ToBSON(v))
			if err != nil {
				return values, dec.InputOffset(), err
			}
			if _, err := out.Write(raw); err != nil {
				return values, dec.InputOffset(), err
			}
			continue
		}

		buf = v.MarshalTo(buf[:0])
		buf = append(buf, '\n')
		if _, err := out.Write(buf); err != nil {
			return values, dec.InputOffset(), err
		}
	}
}
