package authz

import "testing"

func TestContextGetters(t *testing.T) {
	c := Context{
		"name":     "alpha",
		"owner":    float64(42),
		"count":    7,
		"quota":    int64(9),
		"ratio":    1.5,
		"archived": true,
	}

	if v, ok := c.String("name"); !ok || v != "alpha" {
		t.Fatalf("String(name) = %q, %v", v, ok)
	}
	if _, ok := c.String("owner"); ok {
		t.Fatal("String must reject non-string values")
	}

	// JSON decoding hands numbers over as float64.
	if v, ok := c.Int64("owner"); !ok || v != 42 {
		t.Fatalf("Int64(owner) = %d, %v", v, ok)
	}
	if v, ok := c.Int64("count"); !ok || v != 7 {
		t.Fatalf("Int64(count) = %d, %v", v, ok)
	}
	if v, ok := c.Int64("quota"); !ok || v != 9 {
		t.Fatalf("Int64(quota) = %d, %v", v, ok)
	}
	if _, ok := c.Int64("ratio"); ok {
		t.Fatal("Int64 must reject fractional values")
	}

	if v, ok := c.Bool("archived"); !ok || !v {
		t.Fatalf("Bool(archived) = %v, %v", v, ok)
	}
	if _, ok := c.Bool("name"); ok {
		t.Fatal("Bool must reject non-bool values")
	}

	if _, ok := c.String("missing"); ok {
		t.Fatal("missing keys must report absence")
	}

	var empty Context
	if _, ok := empty.Bool("anything"); ok {
		t.Fatal("nil context must report absence")
	}
}
