/*

Process of compilation

Program Text ->
	lex ->
Tokens (token) ->
	parse ->
Abstract Syntax Tree (ast) ->
	analyze ->
Checked Abstract Syntax Tree ->
	back ->
Assembly Instructions (asm) ->
	arm64 ->
Assembly Text

Checked Abstract Syntax Tree ->
	llgen ->
LLVM IR Text

Each step fails at the first error and nothing of the later steps is produced.

*/
package compiler
