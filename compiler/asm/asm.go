package asm

import (
	"fmt"
)

type (
	// Op is a stack machine mnemonic or assembler directive.
	Op string

	// SVC is a service call identifier operand.
	SVC string
)

// directives
const (
	EQU         Op = "EQU"
	RW          Op = "RW"
	DS          Op = "DS"
	CODESEGMENT Op = "CODESEGMENT"
	DATASEGMENT Op = "DATASEGMENT"
	END         Op = "END"
)

// stack and registers
const (
	PUSH    Op = "PUSH"
	PUSHA   Op = "PUSHA"
	POP     Op = "POP"
	POPSP   Op = "POPSP"
	POPSB   Op = "POPSB"
	DISCARD Op = "DISCARD"
	MAKEDUP Op = "MAKEDUP"
	SWAP    Op = "SWAP"
)

// control
const (
	CALL   Op = "CALL"
	RETURN Op = "RETURN"
	SVCOP  Op = "SVC"

	JMP   Op = "JMP"
	JMPT  Op = "JMPT"
	JMPNT Op = "JMPNT"
	JMPL  Op = "JMPL"
	JMPLE Op = "JMPLE"
	JMPE  Op = "JMPE"
	JMPG  Op = "JMPG"
	JMPGE Op = "JMPGE"
	JMPNE Op = "JMPNE"
	JMPNN Op = "JMPNN"

	SETT    Op = "SETT"
	SETNZPI Op = "SETNZPI"
	CMPI    Op = "CMPI"
)

// arithmetic and logic
const (
	ADDI Op = "ADDI"
	SUBI Op = "SUBI"
	MULI Op = "MULI"
	DIVI Op = "DIVI"
	REMI Op = "REMI"
	POWI Op = "POWI"
	NEGI Op = "NEGI"

	OR   Op = "OR"
	NOR  Op = "NOR"
	XOR  Op = "XOR"
	AND  Op = "AND"
	NAND Op = "NAND"
	NOT  Op = "NOT"
)

const (
	WriteString    SVC = "#SVC_WRITE_STRING"
	WriteInteger   SVC = "#SVC_WRITE_INTEGER"
	WriteBoolean   SVC = "#SVC_WRITE_BOOLEAN"
	WriteEndl      SVC = "#SVC_WRITE_ENDL"
	ReadInteger    SVC = "#SVC_READ_INTEGER"
	ReadBoolean    SVC = "#SVC_READ_BOOLEAN"
	InitializeHeap SVC = "#SVC_INITIALIZE_HEAP"
	Terminate      SVC = "#SVC_TERMINATE"
)

// operands
const (
	Here  = "*"
	True  = "#0XFFFF"
	False = "#0X0000"

	// RuntimeErrorHandler is provided by the run-time library.
	// It expects an error code and a source line number on the stack.
	RuntimeErrorHandler = "HANDLERUNTIMEERROR"

	RuntimeStack = "RUNTIMESTACK"
	StaticData   = "STATICDATA"
	HeapBase     = "HEAPBASE"
	HeapSize     = "HEAPSIZE"
)

// Run-time error codes pushed before jumping to RuntimeErrorHandler.
const (
	ErrDivisionByZero = 2
	ErrModuloByZero   = 3
)

// Imm is an immediate decimal operand.
func Imm(n int) string {
	return fmt.Sprintf("#0D%d", n)
}

// ImmLit is an immediate decimal operand from literal digits.
func ImmLit(digits string) string {
	return "#0D" + digits
}

// Stack addresses the n-th cell below the top of the stack.
func Stack(n int) string {
	return fmt.Sprintf("SP:0D%d", n)
}

// Indirect dereferences an address operand.
func Indirect(opnd string) string {
	return "@" + opnd
}
