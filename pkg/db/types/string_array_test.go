package dbtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayScan(t *testing.T) {
	var arr StringArray
	require.NoError(t, arr.Scan(`{Thailand,Vietnam,"Korea, Republic of"}`))
	assert.Equal(t, StringArray{"Thailand", "Vietnam", "Korea, Republic of"}, arr)
}

func TestStringArrayScanEmpty(t *testing.T) {
	var arr StringArray
	require.NoError(t, arr.Scan("{}"))
	assert.Empty(t, arr)

	require.NoError(t, arr.Scan(nil))
	assert.Empty(t, arr)
}

func TestStringArrayScanDropsNulls(t *testing.T) {
	var arr StringArray
	require.NoError(t, arr.Scan(`{Thailand,NULL,""}`))
	assert.Equal(t, StringArray{"Thailand"}, arr)
}

func TestStringArrayValueRoundTrip(t *testing.T) {
	in := StringArray{"Thailand", "Korea, Republic of"}
	v, err := in.Value()
	require.NoError(t, err)

	var out StringArray
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestStringArrayScanRejectsUnknownType(t *testing.T) {
	var arr StringArray
	assert.Error(t, arr.Scan(42))
}
