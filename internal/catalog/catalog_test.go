package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidCatalog(t *testing.T) {
	cat, err := Load(filepath.Join("testdata", "catalog.cue"))
	require.NoError(t, err)

	assert.Equal(t, "USD", cat.Currency)
	require.Len(t, cat.Products, 3)

	hammer := cat.Products[0]
	assert.Equal(t, "p1", hammer.ID)
	assert.Equal(t, "Claw Hammer", hammer.Name)
	assert.Equal(t, int64(1299), hammer.Price)
	assert.Equal(t, "Forgecraft", hammer.Brand)
	assert.True(t, hammer.InStock)
	assert.Equal(t, []string{"hand-tools", "steel"}, hammer.Tags)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nonexistent.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}

func TestParse_DefaultsApplied(t *testing.T) {
	src := []byte(`catalog: products: [{id: "p1", name: "Gloves", category: "safety", price: 899}]`)

	cat, err := Parse(src, "inline.cue")
	require.NoError(t, err)

	assert.Equal(t, "USD", cat.Currency, "currency defaults to USD")
	require.Len(t, cat.Products, 1)
	p := cat.Products[0]
	assert.True(t, p.InStock, "in_stock defaults to true")
	assert.Empty(t, p.Description)
	assert.Empty(t, p.Brand)
	assert.Empty(t, p.Tags)
}

func TestParse_FloatPriceRejected(t *testing.T) {
	src := []byte(`catalog: products: [{id: "p1", name: "Gloves", category: "safety", price: 8.99}]`)

	_, err := Parse(src, "inline.cue")
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, loadErr.Pos.IsValid(), "error carries source position")
}

func TestParse_NegativePriceRejected(t *testing.T) {
	src := []byte(`catalog: products: [{id: "p1", name: "Gloves", category: "safety", price: -1}]`)

	_, err := Parse(src, "inline.cue")
	require.Error(t, err)
}

func TestParse_EmptyIDRejected(t *testing.T) {
	src := []byte(`catalog: products: [{id: "", name: "Gloves", category: "safety", price: 899}]`)

	_, err := Parse(src, "inline.cue")
	require.Error(t, err)
}

func TestParse_MissingRequiredFieldRejected(t *testing.T) {
	// No price.
	src := []byte(`catalog: products: [{id: "p1", name: "Gloves", category: "safety"}]`)

	_, err := Parse(src, "inline.cue")
	require.Error(t, err)
}

func TestParse_DuplicateIDRejected(t *testing.T) {
	src := []byte(`catalog: products: [
		{id: "p1", name: "Gloves", category: "safety", price: 899},
		{id: "p1", name: "Hammer", category: "tools", price: 1299},
	]`)

	_, err := Parse(src, "inline.cue")
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "products.id", loadErr.Field)
	assert.Contains(t, loadErr.Message, "p1")
}

func TestParse_EmptyProductListRejected(t *testing.T) {
	src := []byte(`catalog: products: []`)

	_, err := Parse(src, "inline.cue")
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "products", loadErr.Field)
}

func TestParse_MissingCatalogStructRejected(t *testing.T) {
	src := []byte(`products: [{id: "p1", name: "Gloves", category: "safety", price: 899}]`)

	_, err := Parse(src, "inline.cue")
	require.Error(t, err)
}

func TestParse_BadCurrencyRejected(t *testing.T) {
	src := []byte(`catalog: {
		currency: "dollars"
		products: [{id: "p1", name: "Gloves", category: "safety", price: 899}]
	}`)

	_, err := Parse(src, "inline.cue")
	require.Error(t, err)
}

func TestParse_SyntaxErrorRejected(t *testing.T) {
	src := []byte(`catalog: { products: [ {{`)

	_, err := Parse(src, "inline.cue")
	require.Error(t, err)
}

func TestLoadError_FormatsPosition(t *testing.T) {
	err := &LoadError{Field: "price", Message: "must be an integer"}
	assert.Equal(t, "price: must be an integer", err.Error())
}
