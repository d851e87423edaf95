package parse

import (
	"fmt"

	"github.com/slowlang/tinyc/compiler/token"
)

type (
	UnexpectedTokenError struct {
		Expected string
		Found    token.Token
	}

	UnexpectedEOFError struct {
		Expected string
	}

	MismatchedParensError struct {
		Pos token.Pos
	}

	InvalidExpressionError struct {
		Reason string
		Pos    token.Pos
	}

	// UnimplementedError is returned for statements other than return.
	UnimplementedError struct {
		Found token.Token
	}
)

func NewUnexpected(want string, got token.Token) UnexpectedTokenError {
	return UnexpectedTokenError{
		Expected: want,
		Found:    got,
	}
}

func NewUnexpectedEOF(want string) UnexpectedEOFError {
	return UnexpectedEOFError{Expected: want}
}

func NewMismatchedParens(pos token.Pos) MismatchedParensError {
	return MismatchedParensError{Pos: pos}
}

func NewInvalidExpression(pos token.Pos, reason string) InvalidExpressionError {
	return InvalidExpressionError{
		Reason: reason,
		Pos:    pos,
	}
}

func NewUnimplemented(got token.Token) UnimplementedError {
	return UnimplementedError{Found: got}
}

func (e UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%v: unexpected token %v, want %v", e.Found.Pos, e.Found, e.Expected)
}

func (e UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of input, want %v", e.Expected)
}

func (e MismatchedParensError) Error() string {
	return fmt.Sprintf("%v: mismatched parentheses", e.Pos)
}

func (e InvalidExpressionError) Error() string {
	return fmt.Sprintf("%v: invalid expression: %s", e.Pos, e.Reason)
}

func (e UnimplementedError) Error() string {
	return fmt.Sprintf("%v: unimplemented: statement starting with %v", e.Found.Pos, e.Found)
}
