package arm64

import (
	"strconv"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/tinyc/compiler/asm"
)

type (
	// Target describes the assembly dialect.
	Target struct {
		// LabelPrefix is prepended to function names.
		LabelPrefix string `toml:"label_prefix"`

		// Wide selects 64-bit x registers instead of 32-bit w registers.
		Wide bool `toml:"wide"`
	}
)

var arith = map[asm.ArithOp]string{
	asm.Add: "add",
	asm.Sub: "sub",
	asm.Mul: "mul",
	asm.Div: "sdiv",
}

// Default is the Darwin flavour: labels start with an underscore.
func Default() Target {
	return Target{
		LabelPrefix: "_",
	}
}

func (t Target) Label(name string) string {
	return t.LabelPrefix + name
}

func (t Target) Reg(r asm.Reg) string {
	if t.Wide {
		return "x" + strconv.Itoa(int(r))
	}

	return "w" + strconv.Itoa(int(r))
}

// AppendFunc renders f as an exported function block followed by a blank line.
func (t Target) AppendFunc(b []byte, f asm.Func) (_ []byte, err error) {
	l := t.Label(f.Name)

	b = hfmt.Appendf(b, ".globl %s\n%s:\n", l, l)

	for j, x := range f.Body {
		b, err = t.AppendInstr(b, x)
		if err != nil {
			return nil, errors.Wrap(err, "instr %d", j)
		}
	}

	b = append(b, '\n')

	return b, nil
}

func (t Target) AppendInstr(b []byte, x asm.Instr) ([]byte, error) {
	switch x := x.(type) {
	case asm.MovImm:
		r := t.Reg(x.Out[0])

		b = hfmt.Appendf(b, "    mov %s, %d\n", r, x.Word&0xffff)

		for sh := 16; sh < 64 && x.Word>>sh != 0; sh += 16 {
			if w := x.Word >> sh & 0xffff; w != 0 {
				b = hfmt.Appendf(b, "    movk %s, %d, lsl %d\n", r, w, sh)
			}
		}
	case asm.Mov:
		b = hfmt.Appendf(b, "    mov %s, %s\n", t.Reg(x.Out[0]), t.Reg(x.In[0]))
	case asm.Arith:
		op, ok := arith[x.Op]
		if !ok {
			return nil, errors.New("unsupported arithmetic op: %q", x.Op)
		}

		b = hfmt.Appendf(b, "    %s %s, %s, %s\n", op, t.Reg(x.Out[0]), t.Reg(x.In[0]), t.Reg(x.In[1]))
	case asm.PushFrame:
		b = append(b, "    stp x29, x30, [sp, #-16]!\n"...)
	case asm.PopFrame:
		b = append(b, "    ldp x29, x30, [sp], #16\n"...)
	case asm.BL:
		b = hfmt.Appendf(b, "    bl %s\n", t.Label(x.Label))
	case asm.Ret:
		b = append(b, "    ret\n"...)
	default:
		return nil, errors.New("unsupported instruction: %T", x)
	}

	return b, nil
}
