package services

import (
	"strings"
	"testing"
)

func TestPriceListObjectKey(t *testing.T) {
	t.Parallel()

	key := PriceListObjectKey("прайс февраль.xlsx")
	if !strings.HasPrefix(key, "pricelists/") {
		t.Fatalf("key = %q, want pricelists/ prefix", key)
	}
	if !strings.HasSuffix(key, ".xlsx") {
		t.Fatalf("key = %q, want the original extension kept", key)
	}

	if PriceListObjectKey("a.xlsx") == PriceListObjectKey("a.xlsx") {
		t.Fatal("two keys for the same filename collided")
	}
}
