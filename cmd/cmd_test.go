package cmd

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const impDefinition = `
main: IMP
modules:
  - name: K
    bottom: true
    sorts: [K, KItem, KResult]
    subsorts:
      - sort: KItem
        supersorts: [K]
      - sort: KResult
        supersorts: [KItem]
  - name: IMP
    imports: [K]
    sorts: [Exp, Stmt, Int, Bool]
    subsorts:
      - sort: Exp
        supersorts: [KItem]
      - sort: Stmt
        supersorts: [KItem]
      - sort: Int
        supersorts: [Exp, KResult]
      - sort: Bool
        supersorts: [Exp, KResult]
`

func writeDefinition(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "imp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func run(args ...string) (stdout, stderr string, err error) {
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = Execute(root)
	return out.String(), errOut.String(), err
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func TestQueries(t *testing.T) {
	def := writeDefinition(t, impDefinition)

	testCases := []struct {
		args     []string
		expected string
	}{
		{[]string{"sorts"}, lines("#Bottom", "Bool", "Exp", "Int", "K", "KItem", "KResult", "Stmt")},
		{[]string{"check"}, lines("ok: 8 sorts")},
		{[]string{"subsorted", "KItem", "Int"}, lines("true")},
		{[]string{"subsorted", "Int", "Int"}, lines("false")},
		{[]string{"upper", "Int", "Bool"}, lines("Exp", "K", "KItem", "KResult")},
		{[]string{"lower", "Exp", "KResult"}, lines("#Bottom", "Bool", "Int")},
		{[]string{"upper", "Stmt"}, lines("Stmt")},
		{[]string{"lub", "Int", "Stmt"}, lines("KItem")},
		{[]string{"lub", "Int", "Bool"}, lines(noBound)},
		{[]string{"glb", "Exp", "KResult"}, lines(noBound)},
		{[]string{"glb", "Int", "Bool"}, lines("#Bottom")},
		{[]string{"common", "Exp", "KResult"}, lines("true")},
		{[]string{"common", "KItem", "Exp"}, lines("true")},
		{[]string{"common", "Exp", "Stmt"}, lines("false")},
		{[]string{"common", "Int", "Bool"}, lines("false")},
		{[]string{"--module", "K", "sorts"}, lines("#Bottom", "K", "KItem", "KResult")},
	}

	for _, source := range []string{sourceKore, sourceMiniKore, sourceKil} {
		for _, tc := range testCases {
			t.Run(source+" "+strings.Join(tc.args, " "), func(t *testing.T) {
				stdout, stderr, err := run(append([]string{"--def", def, "--source", source}, tc.args...)...)
				require.NoError(t, err, stderr)
				assert.Equal(t, tc.expected, stdout)
				assert.Empty(t, stderr)
			})
		}
	}
}

func TestFailures(t *testing.T) {
	def := writeDefinition(t, impDefinition)

	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"undefined sort", []string{"--def", def, "lub", "Int", "Id"}, "(E001) Sort Id is undefined."},
		{"undefined sort in subsorted", []string{"--def", def, "subsorted", "Id", "Int"}, "(E001) Sort Id is undefined."},
		{"undefined sort in common", []string{"--def", def, "common", "Int", "Id"}, "(E001) Sort Id is undefined."},
		{"invalid sort name", []string{"--def", def, "upper", "1Int"}, "(E002) '1Int' is not a valid sort name"},
		{"unknown source", []string{"--def", def, "--source", "frontend", "sorts"}, "(E008) unknown declaration source 'frontend'"},
		{"unknown module", []string{"--def", def, "--module", "NOPE", "sorts"}, "(E009)"},
		{"missing definition", []string{"--def", filepath.Join(t.TempDir(), "nope.yaml"), "sorts"}, "open definition nope.yaml"},
		{"missing flag", []string{"sorts"}, `required flag(s) "def" not set`},
		{"wrong arity", []string{"--def", def, "subsorted", "Int"}, "accepts 2 arg(s)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, err := run(tc.args...)
			require.Error(t, err)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tc.expected)
		})
	}
}

func TestInvalidDefinition(t *testing.T) {
	def := writeDefinition(t, `
modules:
  - name: IMP
    sorts: [Exp, Stmt]
    subsorts:
      - sort: Exp
        supersorts: [Stmt, Id]
`)
	_, stderr, err := run("--def", def, "check")
	require.Error(t, err)
	assert.Contains(t, stderr, "(E003) subsort declaration Id > Exp references undeclared sort Id")
}
