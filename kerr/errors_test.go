package kerr

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"testing"
)

func TestFormatWithCode(t *testing.T) {
	testCases := []struct {
		err      KError
		expected string
	}{
		{New(NewUndefinedSort{Name: "Exp"}), "(E001) Sort Exp is undefined."},
		{New(NewUnresolvableSort{Name: "1x"}), "(E002) '1x' is not a valid sort name"},
		{New(NewUndeclaredSubsortSort{Name: "Id", Big: "Exp", Small: "Id"}), "(E003) subsort declaration Exp > Id references undeclared sort Id"},
		{New(NewCyclicSubsort{Cycle: []string{"A", "B", "A"}}), "(E004) cycle in subsort declarations: A > B > A"},
		{New(NewCyclicImport{Modules: []string{"A", "B", "A"}}), "(E010) cycle in module imports: A imports B imports A"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatWithCode(tc.err))
			assert.NotNil(t, tc.err.getStack())
		})
	}
}

func TestRecover(t *testing.T) {
	run := func(f func()) (err error) {
		defer Recover(&err)
		f()
		return nil
	}

	assert.NoError(t, run(func() {}))

	err := run(func() { panic(New(NewUndefinedSort{Name: "Exp", Role: RoleSmall})) })
	var undefined NewUndefinedSort
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, RoleSmall, undefined.Role)
	assert.Equal(t, "small", undefined.Role.String())

	assert.PanicsWithValue(t, "not a KError", func() {
		_ = run(func() { panic("not a KError") })
	})
}

func TestErrors(t *testing.T) {
	var errs *Errors
	assert.False(t, errs.HasError())
	assert.NoError(t, errs.Err())
	assert.Nil(t, errs.Errors())

	errs = errs.With(New(NewDuplicateModule{Module: "IMP"}))
	errs = errs.Merge(nil)
	errs = errs.Merge((&Errors{}).With(New(NewUnknownImport{Module: "IMP", Import: "INT"})))

	require.True(t, errs.HasError())
	assert.Len(t, errs.Errors(), 2)
	assert.Equal(t, "(E006) module IMP is defined more than once\n(E005) module IMP imports unknown module INT", errs.Error())

	var unknown NewUnknownImport
	require.True(t, errors.As(errs.Err(), &unknown))
	assert.Equal(t, "INT", unknown.Import)

	group := errs.LogValue()
	assert.Equal(t, slog.KindGroup, group.Kind())
	assert.Len(t, group.Group(), 2)
}
