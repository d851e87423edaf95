package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"tlog.app/go/errors"

	"github.com/slowlang/tinyc/compiler/asm/arm64"
)

type (
	// Config holds compiler settings. It's loaded from a TOML file:
	//
	//	emit = "asm"
	//
	//	[target]
	//	label_prefix = "_"
	//	wide = false
	Config struct {
		Emit   string       `toml:"emit"`
		Target arm64.Target `toml:"target"`
	}
)

const (
	EmitAsm  = "asm"
	EmitLLVM = "llvm"
)

func Default() Config {
	return Config{
		Emit:   EmitAsm,
		Target: arm64.Default(),
	}
}

// Load reads the file over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	c := Default()

	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, errors.Wrap(err, "config %v", path)
	}

	err = c.check(md)
	if err != nil {
		return c, errors.Wrap(err, "config %v", path)
	}

	return c, nil
}

// Parse decodes in-memory text over the defaults.
func Parse(text string) (Config, error) {
	c := Default()

	md, err := toml.Decode(text, &c)
	if err != nil {
		return c, errors.Wrap(err, "decode")
	}

	return c, c.check(md)
}

func (c Config) check(md toml.MetaData) error {
	if und := md.Undecoded(); len(und) != 0 {
		keys := make([]string, len(und))

		for i, k := range und {
			keys[i] = k.String()
		}

		return errors.New("unknown keys: %v", strings.Join(keys, ", "))
	}

	return c.Validate()
}

func (c Config) Validate() error {
	switch c.Emit {
	case EmitAsm, EmitLLVM:
	default:
		return errors.New("unsupported emit: %q (want %v or %v)", c.Emit, EmitAsm, EmitLLVM)
	}

	return nil
}

// Ext is the output file extension for the emitted format.
func (c Config) Ext() string {
	if c.Emit == EmitLLVM {
		return ".ll"
	}

	return ".s"
}
