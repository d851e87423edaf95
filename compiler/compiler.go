package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/tinyc/compiler/analyze"
	"github.com/slowlang/tinyc/compiler/ast"
	"github.com/slowlang/tinyc/compiler/back"
	"github.com/slowlang/tinyc/compiler/config"
	"github.com/slowlang/tinyc/compiler/lex"
	"github.com/slowlang/tinyc/compiler/llgen"
	"github.com/slowlang/tinyc/compiler/parse"
)

func CompileFile(ctx context.Context, name string, cfg config.Config) (obj []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text, cfg)
}

// Compile runs the whole pipeline. Nothing is returned but the first error on failure.
func Compile(ctx context.Context, name string, text []byte, cfg config.Config) (obj []byte, err error) {
	err = cfg.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}

	p, err := Parse(ctx, name, text)
	if err != nil {
		return nil, err
	}

	err = analyze.Analyze(ctx, p)
	if err != nil {
		return nil, errors.Wrap(err, "analyze")
	}

	switch cfg.Emit {
	case config.EmitLLVM:
		m, err := llgen.Generate(ctx, p)
		if err != nil {
			return nil, errors.Wrap(err, "generate llvm")
		}

		return []byte(m.String()), nil
	default:
		obj, err = back.New(cfg.Target).CompileProgram(ctx, nil, p)
		if err != nil {
			return nil, errors.Wrap(err, "compile")
		}

		return obj, nil
	}
}

func ParseFile(ctx context.Context, name string) (*ast.Program, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return Parse(ctx, name, text)
}

// Parse lexes and parses text without analyzing it.
func Parse(ctx context.Context, name string, text []byte) (*ast.Program, error) {
	toks, err := lex.Lex(ctx, name, text)
	if err != nil {
		return nil, errors.Wrap(err, "lex")
	}

	p, err := parse.Parse(ctx, toks)
	if err != nil {
		return nil, errors.Wrap(err, "parse text")
	}

	return p, nil
}
