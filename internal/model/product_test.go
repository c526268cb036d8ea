package model

import "testing"

func TestIncompatibleIsSymmetric(t *testing.T) {
	p := &Product{ID: "P3", IncompatibleWith: map[string]struct{}{"P4": {}}}
	q := &Product{ID: "P4", IncompatibleWith: map[string]struct{}{}}

	if !Incompatible(p, q) {
		t.Error("expected p incompatible with q (declared on p's side)")
	}
	if !Incompatible(q, p) {
		t.Error("expected q incompatible with p even though only declared on p's side")
	}
}

func TestIncompatibleSameProductIsFalse(t *testing.T) {
	p := &Product{ID: "P1", IncompatibleWith: map[string]struct{}{"P1": {}}}
	if Incompatible(p, p) {
		t.Error("a product is never incompatible with itself")
	}
}

func TestCatalogGet(t *testing.T) {
	c := NewCatalog([]*Product{{ID: "P1"}, {ID: "P2"}})
	if _, ok := c.Get("P1"); !ok {
		t.Error("expected P1 in catalog")
	}
	if _, ok := c.Get("P9"); ok {
		t.Error("did not expect P9 in catalog")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}
