package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(CodeEmptyTable, "table %s is empty", "a.csv")
	assert.Equal(t, "EMPTY_TABLE: table a.csv is empty", plain.Error())

	cause := stderrors.New("disk gone")
	wrapped := Wrap(CodeLoadFailed, cause, "failed to load %s", "b.csv")
	assert.Equal(t, "LOAD_FAILED: failed to load b.csv: disk gone", wrapped.Error())
	assert.Equal(t, cause, stderrors.Unwrap(wrapped))
}

func TestCodeOf(t *testing.T) {
	err := UnsupportedFormat(".pdf")
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnsupportedFormat, code)

	// Through an fmt wrap.
	wrapped := stderrors.Join(stderrors.New("outer"), err)
	code, ok = CodeOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeUnsupportedFormat, code)

	_, ok = CodeOf(stderrors.New("uncoded"))
	assert.False(t, ok)
}

func TestHelpers(t *testing.T) {
	cause := stderrors.New("stat failed")

	err := FileNotFound("/tmp/x.csv", cause)
	assert.Equal(t, CodeFileNotFound, err.Code)
	assert.Contains(t, err.Error(), "/tmp/x.csv")
	assert.True(t, stderrors.Is(err, cause))

	op := ColumnOperation("age", "convert_column", stderrors.New("nope"))
	assert.Equal(t, CodeColumnOperation, op.Code)
	assert.Contains(t, op.Error(), "age")
	assert.Contains(t, op.Error(), "convert_column")
}
