package kerr

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include the frame that created them when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None          ErrCode = iota
	UndefinedSort ErrCode = iota
	UnresolvableSort
	UndeclaredSubsortSort
	CyclicSubsort
	UnknownImport
	DuplicateModule
	InvalidSubsortRelation
	UnknownSource
	UnknownModule
	CyclicImport
)

// KError is a coded error of the sort lattice or of one of its declaration sources.
// Values are built with New so that they carry the stack they were created at.
type KError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) KError
	getStack() []byte
}

func FormatWithCode(e KError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 6 {
				stack = strings.TrimSpace(lines[6])
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E KError](err E) KError {
	return err.withStack(debug.Stack())
}

// Recover turns a KError panic into *into, and re-panics anything else.
// It must be deferred directly.
func Recover(into *error) {
	r := recover()
	if r == nil {
		return
	}
	if kErr, ok := r.(KError); ok {
		*into = kErr
		return
	}
	panic(r)
}

type Unclassified struct {
	From  error
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) KError {
	e.stack = stack
	return e
}

// SortRole says which argument of a subsort query a sort was passed as
type SortRole int

const (
	RoleBig SortRole = iota
	RoleSmall
)

func (r SortRole) String() string {
	if r == RoleBig {
		return "big"
	}
	return "small"
}

type NewUndefinedSort struct {
	Name  string
	Role  SortRole
	stack []byte
}

func (e NewUndefinedSort) Error() string {
	return fmt.Sprintf("Sort %s is undefined.", e.Name)
}
func (e NewUndefinedSort) Code() ErrCode    { return UndefinedSort }
func (e NewUndefinedSort) getStack() []byte { return e.stack }
func (e NewUndefinedSort) withStack(stack []byte) KError {
	e.stack = stack
	return e
}

type NewUnresolvableSort struct {
	Name  string
	stack []byte
}

func (e NewUnresolvableSort) Error() string {
	return fmt.Sprintf("'%s' is not a valid sort name", e.Name)
}
func (e NewUnresolvableSort) Code() ErrCode    { return UnresolvableSort }
func (e NewUnresolvableSort) getStack() []byte { return e.stack }
func (e NewUnresolvableSort) withStack(stack []byte) KError {
	e.stack = stack
	return e
}

type NewUndeclaredSubsortSort struct {
	Name string
	// Big and Small are the two sides of the offending subsort declaration
	Big, Small string
	stack      []byte
}

func (e NewUndeclaredSubsortSort) Error() string {
	return fmt.Sprintf("subsort declaration %s > %s references undeclared sort %s", e.Big, e.Small, e.Name)
}
func (e NewUndeclaredSubsortSort) Code() ErrCode    { return UndeclaredSubsortSort }
func (e NewUndeclaredSubsortSort) getStack() []byte { return e.stack }
func (e NewUndeclaredSubsortSort) withStack(stack []byte) KError {
	e.stack = stack
	return e
}

type NewCyclicSubsort struct {
	Cycle []string
	stack []byte
}

func (e NewCyclicSubsort) Error() string {
	return fmt.Sprintf("cycle in subsort declarations: %s", strings.Join(e.Cycle, " > "))
}
func (e NewCyclicSubsort) Code() ErrCode    { return CyclicSubsort }
func (e NewCyclicSubsort) getStack() []byte { return e.stack }
func (e NewCyclicSubsort) withStack(stack []byte) KError {
	e.stack = stack
	return e
}

type NewUnknownImport struct {
	Module string
	Import string
	stack  []byte
}

func (e NewUnknownImport) Error() string {
	return fmt.Sprintf("module %s imports unknown module %s", e.Module, e.Import)
}
func (e NewUnknownImport) Code() ErrCode    { return UnknownImport }
func (e NewUnknownImport) getStack() []byte { return e.stack }
func (e NewUnknownImport) withStack(stack []byte) KError {
	e.stack = stack
	return e
}

type NewDuplicateModule struct {
	Module string
	stack  []byte
}

func (e NewDuplicateModule) Error() string {
	return fmt.Sprintf("module %s is defined more than once", e.Module)
}
func (e NewDuplicateModule) Code() ErrCode    { return DuplicateModule }
func (e NewDuplicateModule) getStack() []byte { return e.stack }
func (e NewDuplicateModule) withStack(stack []byte) KError {
	e.stack = stack
	return e
}

type NewUnknownModule struct {
	Module string
	stack  []byte
}

func (e NewUnknownModule) Error() string {
	return fmt.Sprintf("module %s is not defined", e.Module)
}
func (e NewUnknownModule) Code() ErrCode    { return UnknownModule }
func (e NewUnknownModule) getStack() []byte { return e.stack }
func (e NewUnknownModule) withStack(stack []byte) KError {
	e.stack = stack
	return e
}

// NewInvalidSubsortRelation is reported when a built relation is not a strict partial order
type NewInvalidSubsortRelation struct {
	Big, Small string
	Reason     string
	stack      []byte
}

func (e NewInvalidSubsortRelation) Error() string {
	return fmt.Sprintf("subsort relation is not a strict partial order at (%s, %s): %s", e.Big, e.Small, e.Reason)
}
func (e NewInvalidSubsortRelation) Code() ErrCode    { return InvalidSubsortRelation }
func (e NewInvalidSubsortRelation) getStack() []byte { return e.stack }
func (e NewInvalidSubsortRelation) withStack(stack []byte) KError {
	e.stack = stack
	return e
}

type NewUnknownSource struct {
	Name  string
	stack []byte
}

func (e NewUnknownSource) Error() string {
	return fmt.Sprintf("unknown declaration source '%s'", e.Name)
}
func (e NewUnknownSource) Code() ErrCode    { return UnknownSource }
func (e NewUnknownSource) getStack() []byte { return e.stack }
func (e NewUnknownSource) withStack(stack []byte) KError {
	e.stack = stack
	return e
}

type NewCyclicImport struct {
	Modules []string
	stack   []byte
}

func (e NewCyclicImport) Error() string {
	return fmt.Sprintf("cycle in module imports: %s", strings.Join(e.Modules, " imports "))
}
func (e NewCyclicImport) Code() ErrCode    { return CyclicImport }
func (e NewCyclicImport) getStack() []byte { return e.stack }
func (e NewCyclicImport) withStack(stack []byte) KError {
	e.stack = stack
	return e
}
