package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_TwoDecimalCurrency(t *testing.T) {
	f, err := NewFormatter("USD")
	require.NoError(t, err)

	assert.Equal(t, "USD", f.Code())
	assert.Equal(t, "USD 12.99", f.Format(1299))
	assert.Equal(t, "USD 0.00", f.Format(0))
	assert.Equal(t, "USD 0.05", f.Format(5))
	assert.Equal(t, "USD 0.50", f.Format(50))
}

func TestFormatter_GroupsThousands(t *testing.T) {
	f, err := NewFormatter("USD")
	require.NoError(t, err)

	assert.Equal(t, "USD 12,345.67", f.Format(1234567))
	assert.Equal(t, "USD 1,234,567.89", f.Format(123456789))
}

func TestFormatter_NegativeAmount(t *testing.T) {
	f, err := NewFormatter("USD")
	require.NoError(t, err)

	assert.Equal(t, "USD -12.99", f.Format(-1299))
}

func TestFormatter_ZeroDecimalCurrency(t *testing.T) {
	f, err := NewFormatter("JPY")
	require.NoError(t, err)

	assert.Equal(t, "JPY 1,299", f.Format(1299))
	assert.Equal(t, "JPY 0", f.Format(0))
}

func TestFormatter_LowercaseCodeAccepted(t *testing.T) {
	f, err := NewFormatter("usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", f.Code())
}

func TestNewFormatter_UnknownCode(t *testing.T) {
	_, err := NewFormatter("ZZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZZZ")
}

func TestFormat_Convenience(t *testing.T) {
	assert.Equal(t, "USD 12.99", Format(1299, "USD"))
}

func TestFormat_UnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "ZZZ 1299", Format(1299, "ZZZ"))
}
