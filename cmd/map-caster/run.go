package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"map-caster/internal/common"
	"map-caster/internal/schemafile"
	"map-caster/node"
	"map-caster/options"

	"github.com/jessevdk/go-flags"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// run parses args, converts the input document and writes the result as JSON.
// It is kept apart from main so tests can drive the whole command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts := &Options{}

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	fs := afs.New()

	file, err := schemafile.Load(ctx, fs, opts.Schema)
	if err != nil {
		return err
	}

	if !common.IsEmpty(opts.Categories) {
		file.Options.Categories = opts.Categories
	}

	file.Options.NormalizeKeys = file.Options.NormalizeKeys || opts.NormalizeKeys

	convOpts, err := file.ConverterOptions()
	if err != nil {
		return err
	}

	registry := node.NewRegistry()
	if _, err := file.Build(registry); err != nil {
		return fmt.Errorf("build schema %q: %w", opts.Schema, err)
	}

	model, ok := registry.Lookup(opts.Model)
	if !ok {
		return &node.SchemaMissingError{Target: opts.Model}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	if opts.JSONSchema {
		return enc.Encode(node.JSONSchema(model, registry))
	}

	data, err := readInput(ctx, fs, opts.Input, stdin)
	if err != nil {
		return err
	}

	converter := node.New(registry, append(convOpts, options.WithLogger(logger))...)
	logger.Debug("converting", "model", model.Name(), "list", opts.List, "bytes", len(data))

	if opts.List {
		var inputs []map[string]any
		if err := decode(data, &inputs); err != nil {
			return err
		}

		out, err := converter.PopulateList(inputs, model)
		if err != nil {
			return err
		}

		return enc.Encode(out)
	}

	var input map[string]any
	if err := decode(data, &input); err != nil {
		return err
	}

	out, err := converter.Populate(input, model)
	if err != nil {
		return err
	}

	return enc.Encode(out)
}

func readInput(ctx context.Context, fs afs.Service, url string, stdin io.Reader) ([]byte, error) {
	if url == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download input %q: %w", url, err)
	}

	return data, nil
}

// decode reads JSON keeping numbers as json.Number, and falls back to YAML
// for anything that is not valid JSON.
func decode(data []byte, out any) error {
	if json.Valid(data) {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()

		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("decode JSON input: %w", err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode YAML input: %w", err)
	}

	return nil
}
