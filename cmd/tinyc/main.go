package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/tinyc/compiler"
	"github.com/slowlang/tinyc/compiler/config"
	"github.com/slowlang/tinyc/compiler/format"
	"github.com/slowlang/tinyc/compiler/lex"
)

func main() {
	lexCmd := &cli.Command{
		Name:        "lex",
		Description: "print tokens of source files",
		Action:      lexAct,
		Args:        cli.Args{},
	}

	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "print abstract syntax tree of source files",
		Action:      parseAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("format", "yaml", "output format: yaml or src"),
		},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile source files into assembly or llvm ir",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("emit", "", "output format: asm or llvm (overrides config)"),
			cli.NewFlag("output,o", "", "output file, - for stdout (default: next to the input)"),
		},
	}

	app := &cli.Command{
		Name:        "tinyc",
		Description: "tinyc is a compiler for a tiny c-like language",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("config,c", "", "config file (toml)"),
			cli.NewFlag("verbosity,v", "", "logger verbosity topics (lex,shunt,scope,codegen)"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			lexCmd,
			parseCmd,
			compileCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	tlog.DefaultLogger = tlog.New(tlog.NewConsoleWriter(os.Stderr, tlog.LstdFlags))

	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func lexAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read file")
		}

		toks, err := lex.Lex(ctx, a, text)
		if err != nil {
			return errors.Wrap(err, "lex %v", a)
		}

		for _, tk := range toks {
			fmt.Printf("%-12v %v\n", tk.Pos, tk)
		}
	}

	return nil
}

func parseAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		x, err := compiler.ParseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		var b []byte

		switch f := c.String("format"); f {
		case "yaml":
			b, err = yaml.Marshal(x)
		case "src":
			b, err = format.Format(ctx, nil, x)
		default:
			return errors.New("unsupported format: %q", f)
		}

		if err != nil {
			return errors.Wrap(err, "format %v", a)
		}

		fmt.Printf("%s", b)
	}

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	return compileFiles(ctx, c.Args, c.String("output"), cfg, os.Stdout)
}

// compileFiles compiles every input and writes it where outputPaths says.
func compileFiles(ctx context.Context, inputs []string, out string, cfg config.Config, stdout io.Writer) error {
	dst, err := outputPaths(inputs, out, cfg.Ext())
	if err != nil {
		return err
	}

	for j, a := range inputs {
		obj, err := compiler.CompileFile(ctx, a, cfg)
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		if dst[j] == "-" {
			_, err = stdout.Write(obj)
		} else {
			err = os.WriteFile(dst[j], obj, 0o644)
		}

		if err != nil {
			return errors.Wrap(err, "write %v", a)
		}
	}

	return nil
}

// outputPaths checks inputs and picks the output for each one.
// Empty out writes next to the input with ext, "-" is stdout.
func outputPaths(inputs []string, out, ext string) ([]string, error) {
	if out != "" && out != "-" && len(inputs) > 1 {
		return nil, errors.New("--output with multiple inputs")
	}

	dst := make([]string, len(inputs))

	for j, a := range inputs {
		if filepath.Ext(a) != ".c" {
			return nil, errors.New("%v: input file must have a .c extension", a)
		}

		switch out {
		case "":
			dst[j] = strings.TrimSuffix(a, ".c") + ext
		default:
			dst[j] = out
		}
	}

	return dst, nil
}

func loadConfig(c *cli.Command) (cfg config.Config, err error) {
	cfg = config.Default()

	if p := c.String("config"); p != "" {
		cfg, err = config.Load(p)
		if err != nil {
			return cfg, err
		}
	}

	if e := c.String("emit"); e != "" {
		cfg.Emit = e
	}

	return cfg, cfg.Validate()
}
