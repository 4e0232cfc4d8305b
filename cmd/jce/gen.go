package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/oy3o/jce/internal/gen"
	"github.com/oy3o/jce/schema"
)

var genCommand = &command{
	name:    "gen",
	args:    "--schema file [flags]",
	summary: "generate Go types implementing jce.Struct from a schema",
	run:     runGen,
}

func runGen(e *env, args []string) error {
	var (
		schemaPath string
		pkg        string
		output     string
	)
	fs := pflag.NewFlagSet("gen", pflag.ContinueOnError)
	fs.StringVar(&schemaPath, "schema", "", "schema file (YAML, or JSON with comments)")
	fs.StringVar(&pkg, "package", gen.DefaultPackage, "package clause of the generated file")
	fs.StringVarP(&output, "output", "o", "", "output file (default stdout)")
	if done, err := parseFlags(e, fs, args); done || err != nil {
		return err
	}
	if schemaPath == "" {
		return errors.New("--schema is required")
	}

	reg, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}
	src, err := gen.Generate(reg, gen.Options{Package: pkg, Source: filepath.Base(schemaPath)})
	if err != nil {
		return err
	}
	if output == "" {
		_, err = e.stdout.Write(src)
		return err
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		return err
	}
	e.logger.Info("generated", "output", output, "structs", len(reg.Names()))
	return nil
}
