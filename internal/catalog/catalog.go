// Package catalog loads product catalogs from CUE files.
//
// CUE rather than plain JSON so the catalog file carries its own
// constraints: non-empty IDs, integer minor-unit prices, a known
// currency code. A file that violates the schema is rejected with the
// offending position before any product reaches the state machine.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/tessaro/storefront/internal/domain"
)

//go:embed schema.cue
var schemaSource string

// Catalog is the decoded content of one catalog file.
type Catalog struct {
	Currency string
	Products []domain.Product
}

// LoadError is a catalog validation failure with source position.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and validates a catalog CUE file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, path)
}

// Parse validates catalog CUE source against the embedded schema and
// decodes the product list. filename is used in error positions only.
func Parse(src []byte, filename string) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The embedded schema is part of the binary; failing to compile
		// it is a build defect, not an input problem.
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}

	doc := ctx.CompileBytes(src, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	root := unified.LookupPath(cue.ParsePath("catalog"))
	if !root.Exists() {
		return nil, &LoadError{
			Field:   "catalog",
			Message: "top-level catalog struct is required",
			Pos:     unified.Pos(),
		}
	}

	cat := &Catalog{}
	currency, err := resolve(root.LookupPath(cue.ParsePath("currency"))).String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	cat.Currency = currency

	productsVal := root.LookupPath(cue.ParsePath("products"))
	iter, err := productsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	seen := make(map[string]token.Pos)
	for iter.Next() {
		p, err := parseProduct(iter.Value())
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[p.ID]; dup {
			return nil, &LoadError{
				Field:   "products.id",
				Message: fmt.Sprintf("duplicate product id %q (first defined at %s:%d)", p.ID, prev.Filename(), prev.Line()),
				Pos:     iter.Value().Pos(),
			}
		}
		seen[p.ID] = iter.Value().Pos()
		cat.Products = append(cat.Products, p)
	}

	if len(cat.Products) == 0 {
		return nil, &LoadError{
			Field:   "products",
			Message: "catalog has no products",
			Pos:     root.Pos(),
		}
	}

	return cat, nil
}

func parseProduct(v cue.Value) (domain.Product, error) {
	var p domain.Product

	str := func(field string) (string, error) {
		s, err := resolve(v.LookupPath(cue.ParsePath(field))).String()
		if err != nil {
			return "", formatCUEError(err)
		}
		return s, nil
	}

	var err error
	if p.ID, err = str("id"); err != nil {
		return p, err
	}
	if p.Name, err = str("name"); err != nil {
		return p, err
	}
	if p.Description, err = str("description"); err != nil {
		return p, err
	}
	if p.Category, err = str("category"); err != nil {
		return p, err
	}
	if p.Brand, err = str("brand"); err != nil {
		return p, err
	}

	price, err := v.LookupPath(cue.ParsePath("price")).Int64()
	if err != nil {
		return p, formatCUEError(err)
	}
	p.Price = price

	inStock, err := resolve(v.LookupPath(cue.ParsePath("in_stock"))).Bool()
	if err != nil {
		return p, formatCUEError(err)
	}
	p.InStock = inStock

	tagsVal := resolve(v.LookupPath(cue.ParsePath("tags")))
	if tagsVal.Exists() {
		tagIter, err := tagsVal.List()
		if err != nil {
			return p, formatCUEError(err)
		}
		for tagIter.Next() {
			tag, err := tagIter.Value().String()
			if err != nil {
				return p, formatCUEError(err)
			}
			p.Tags = append(p.Tags, tag)
		}
	}

	return p, nil
}

// resolve picks the default branch of a disjunction, if one exists.
// Accessors like String and List want a single concrete value.
func resolve(v cue.Value) cue.Value {
	if d, ok := v.Default(); ok {
		return d
	}
	return v
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &LoadError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
