package mockserver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormFields(t *testing.T) {
	t.Parallel()

	f := NewFormFields()
	f.Add("b", "1")
	f.Add("a", "x")
	f.Add("b", "2")
	f.Add("b", "3")

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []string{"b", "a"}, f.Names())

	a, ok := f.Get("a")
	require.True(t, ok)
	assert.False(t, a.IsMulti())
	assert.Equal(t, "x", a.First())

	b, ok := f.Get("b")
	require.True(t, ok)
	assert.True(t, b.IsMulti())
	assert.Equal(t, []string{"1", "2", "3"}, b.All())

	_, ok = f.Get("missing")
	assert.False(t, ok)

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `{"b":["1","2","3"],"a":"x"}`, string(data))
}

func TestFormFieldsEscaping(t *testing.T) {
	t.Parallel()

	f := NewFormFields()
	f.Add(`we"ird`, "line\nbreak")
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"we\"ird":"line\nbreak"}`, string(data))
}

func TestFormFieldsEmpty(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewFormFields())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
