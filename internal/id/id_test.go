package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesKindPrefix(t *testing.T) {
	got := New(KindInvoice)
	assert.Equal(t, KindInvoice, Kind(got))
	assert.NotEqual(t, New(KindInvoice), got, "ids must be unique")
}

func TestKind(t *testing.T) {
	assert.Equal(t, "tx", Kind("tx_abc"))
	assert.Equal(t, "", Kind("noprefix"))
	assert.Equal(t, "", Kind(""))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate("grp_123", KindGroup))
	err := Validate("tx_123", KindGroup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a grp id")
}
