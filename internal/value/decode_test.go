package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesObjectOrder(t *testing.T) {
	v, err := Parse([]byte(`{"z": 1, "a": 2, "nested": {"y": 1, "x": 2}}`))
	require.NoError(t, err)
	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "nested"}, obj.Keys())

	nested, ok := obj.Get("nested")
	require.True(t, ok)
	nestedObj, ok := nested.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"y", "x"}, nestedObj.Keys())
}

func TestParseScalarsAndArrays(t *testing.T) {
	v, err := Parse([]byte(`[1, "two", true, false, null, 3.5]`))
	require.NoError(t, err)
	arr, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, arr, 6)
	assert.Equal(t, 1.0, arr[0])
	assert.Equal(t, "two", arr[1])
	assert.Equal(t, true, arr[2])
	assert.Equal(t, false, arr[3])
	assert.Nil(t, arr[4])
	assert.Equal(t, 3.5, arr[5])
}

func TestParseEmptyInput(t *testing.T) {
	v, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Nil(t, v)
}
