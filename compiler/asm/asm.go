package asm

type (
	Reg int

	// ArithOp is a two-register arithmetic instruction.
	ArithOp string

	Func struct {
		Name string
		Body []Instr
	}

	Instr any

	MovImm struct {
		Out  [1]Reg
		Word uint64
	}

	Mov struct {
		Out [1]Reg
		In  [1]Reg
	}

	Arith struct {
		Op  ArithOp
		Out [1]Reg
		In  [2]Reg
	}

	// PushFrame saves frame pointer and link register before a call.
	PushFrame struct{}

	// PopFrame restores what PushFrame saved.
	PopFrame struct{}

	BL struct {
		Label string
	}

	Ret struct{}
)

const (
	R0 Reg = iota
	R1
)

const (
	Add ArithOp = "add"
	Sub ArithOp = "sub"
	Mul ArithOp = "mul"
	Div ArithOp = "div"
)
