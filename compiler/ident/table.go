package ident

import (
	"fmt"

	"tlog.app/go/errors"

	"github.com/aegiel/agl/compiler/set"
	"github.com/aegiel/agl/compiler/tp"
)

type (
	// Scope selects where a declaration lives and whether its initializer is deferred.
	Scope int

	Kind int

	Entry struct {
		Name string
		Kind Kind
		Type tp.Type
		Ref  string

		depth int
	}

	// Table is a stack of nested static scopes.
	// Entries of the innermost scope are always the tail of entries.
	Table struct {
		entries []Entry
		scopes  []set.Bitmap

		max int
	}
)

const (
	Global Scope = iota
	ProgramModule
)

const (
	GlobalVariable Kind = iota
	GlobalConstant
	ProgramModuleVariable
	ProgramModuleConstant
)

var ErrOverflow = errors.New("identifier table overflow")

// KindFor combines scope and mutability.
func KindFor(s Scope, mutable bool) Kind {
	switch {
	case s == Global && mutable:
		return GlobalVariable
	case s == Global:
		return GlobalConstant
	case mutable:
		return ProgramModuleVariable
	default:
		return ProgramModuleConstant
	}
}

func (k Kind) IsConstant() bool {
	return k == GlobalConstant || k == ProgramModuleConstant
}

func (k Kind) IsVariable() bool {
	return k >= GlobalVariable && k <= ProgramModuleConstant
}

func (k Kind) String() string {
	switch k {
	case GlobalVariable:
		return "GLOBAL_VARIABLE"
	case GlobalConstant:
		return "GLOBAL_CONSTANT"
	case ProgramModuleVariable:
		return "PROGRAMMODULE_VARIABLE"
	case ProgramModuleConstant:
		return "PROGRAMMODULE_CONSTANT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (s Scope) String() string {
	if s == Global {
		return "GLOBAL"
	}

	return "PROGRAMMODULE"
}

// New creates a table holding at most max identifiers with the global scope open.
func New(max int) *Table {
	return &Table{
		scopes: []set.Bitmap{set.MakeBitmap(max)},
		max:    max,
	}
}

func (t *Table) EnterNestedScope() {
	t.scopes = append(t.scopes, set.MakeBitmap(t.max))
}

func (t *Table) ExitNestedScope() error {
	if len(t.scopes) == 1 {
		return errors.New("exit from global scope")
	}

	top := t.scopes[len(t.scopes)-1]

	t.entries = t.entries[:len(t.entries)-top.Size()]
	t.scopes = t.scopes[:len(t.scopes)-1]

	return nil
}

// Depth is the number of nested scopes entered, 0 being global.
func (t *Table) Depth() int {
	return len(t.scopes) - 1
}

// Lookup finds the innermost binding of name.
func (t *Table) Lookup(name string) (int, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Name == name {
			return i, true
		}
	}

	return -1, false
}

func (t *Table) IsInCurrentScope(index int) bool {
	top := &t.scopes[len(t.scopes)-1]

	return top.IsSet(index)
}

// Bind adds name to the current scope.
// Redefinition checks are the caller's concern.
func (t *Table) Bind(name string, k Kind, typ tp.Type, ref string) (int, error) {
	if len(t.entries) >= t.max {
		return -1, errors.Wrap(ErrOverflow, "bind %v", name)
	}

	idx := len(t.entries)

	t.entries = append(t.entries, Entry{
		Name:  name,
		Kind:  k,
		Type:  typ,
		Ref:   ref,
		depth: t.Depth(),
	})

	t.scopes[len(t.scopes)-1].Set(idx)

	return idx, nil
}

func (t *Table) KindOf(index int) Kind {
	return t.entries[index].Kind
}

func (t *Table) DataTypeOf(index int) tp.Type {
	return t.entries[index].Type
}

func (t *Table) RefOf(index int) string {
	return t.entries[index].Ref
}

// Dump renders the table contents as listing lines.
func (t *Table) Dump(title string) []string {
	r := []string{
		title,
		fmt.Sprintf("%4s %5s %-20s %-24s %-10s %s", "#", "Scope", "Name", "Kind", "Type", "Reference"),
	}

	for i, e := range t.entries {
		r = append(r, fmt.Sprintf("%4d %5d %-20s %-24v %-10v %s", i, e.depth, e.Name, e.Kind, e.Type, e.Ref))
	}

	return r
}
