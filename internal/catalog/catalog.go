// Shopper Spectrum - Product Recommendations and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package catalog holds the immutable product catalog loaded from the
// similarity artifact.
//
// Products keep the order in which the artifact listed them. Search walks
// that order and the first hit is the canonical anchor for recommendations,
// so the same catalog always resolves a query to the same product.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateProduct is returned by New when two products share an identifier.
var ErrDuplicateProduct = errors.New("duplicate product identifier")

// Product is a catalog entry.
type Product struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Frequency   int64  `json:"frequency"`
}

// Catalog is an ordered, read-only set of products. It is safe for
// concurrent use because nothing mutates it after New returns.
type Catalog struct {
	products   []Product
	normalized []string // uppercased descriptions, parallel to products
	index      map[string]int
}

// Normalize trims surrounding whitespace and uppercases s. Queries and
// descriptions are compared in this form.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// New builds a catalog from products in artifact order. Identifiers must be
// non-empty and unique. Negative frequencies are clamped to zero.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products:   make([]Product, 0, len(products)),
		normalized: make([]string, 0, len(products)),
		index:      make(map[string]int, len(products)),
	}
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product at position %d has an empty identifier", i)
		}
		if _, ok := c.index[p.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		if p.Frequency < 0 {
			p.Frequency = 0
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
		c.normalized = append(c.normalized, strings.ToUpper(p.Description))
	}
	return c, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Lookup returns the product with the given identifier.
func (c *Catalog) Lookup(id string) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Frequency returns the purchase frequency of id, or 0 if id is unknown.
func (c *Catalog) Frequency(id string) int64 {
	if i, ok := c.index[id]; ok {
		return c.products[i].Frequency
	}
	return 0
}

// Search returns every product whose uppercased description contains the
// normalized text as a literal substring, in catalog order. An empty query
// matches nothing.
func (c *Catalog) Search(text string) []Product {
	return c.search(Normalize(text), -1)
}

// SearchLimit is Search capped at limit results. A limit <= 0 means no cap.
func (c *Catalog) SearchLimit(text string, limit int) []Product {
	return c.search(Normalize(text), limit)
}

// First returns the first product matching text in catalog order. This is
// the anchor used for recommendations.
func (c *Catalog) First(text string) (Product, bool) {
	matches := c.search(Normalize(text), 1)
	if len(matches) == 0 {
		return Product{}, false
	}
	return matches[0], true
}

func (c *Catalog) search(query string, limit int) []Product {
	if query == "" {
		return nil
	}
	var out []Product
	for i, desc := range c.normalized {
		if !strings.Contains(desc, query) {
			continue
		}
		out = append(out, c.products[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Products returns a copy of all products in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Popular resolves the first n identifiers of an ordered list (the
// artifact's top_products) to products. Identifiers missing from the catalog
// are skipped, so fewer than n products may come back.
func (c *Catalog) Popular(ids []string, n int) []Product {
	if n <= 0 {
		return nil
	}
	if len(ids) > n {
		ids = ids[:n]
	}
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.Lookup(id); ok {
			out = append(out, p)
		}
	}
	return out
}
