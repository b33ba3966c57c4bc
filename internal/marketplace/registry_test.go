package marketplace

import (
	"testing"

	"github.com/pricelens/backend/internal/domain"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	t.Run("registers all eight sources in fixed order", func(t *testing.T) {
		want := []string{"amazon", "flipkart", "meesho", "zepto", "bbdaily", "instamart", "myntra", "nykaa"}
		all := r.All()
		if len(all) != len(want) {
			t.Fatalf("len(All()) = %d, want %d", len(all), len(want))
		}
		for i, key := range want {
			if all[i].Key() != key {
				t.Errorf("All()[%d].Key() = %q, want %q", i, all[i].Key(), key)
			}
		}
	})

	t.Run("All returns a defensive copy", func(t *testing.T) {
		first := r.All()
		first[0] = nil
		if r.All()[0] == nil {
			t.Error("mutating the returned slice changed registry state")
		}
	})

	t.Run("Get finds registered keys", func(t *testing.T) {
		a, ok := r.Get("myntra")
		if !ok || a.Key() != "myntra" {
			t.Errorf("Get(myntra) = %v, %v", a, ok)
		}
		if _, ok := r.Get("ebay"); ok {
			t.Error("Get(ebay) = true, want false")
		}
	})
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()

	cases := []struct {
		reference string
		wantKey   string
	}{
		{"https://www.amazon.in/dp/B0BDJH6GL2", "amazon"},
		{"https://www.amazon.com/gp/product/B08N5WRWNW", "amazon"},
		{"https://www.flipkart.com/apple-iphone-14/p/itm123", "flipkart"},
		{"https://www.meesho.com/cotton-saree/p/1abc2", "meesho"},
		{"https://www.zeptonow.com/pn/amul-milk", "zepto"},
		{"https://www.bigbasket.com/pd/12345/fresh-bread", "bbdaily"},
		{"https://www.swiggy.com/instamart/item/eggs", "instamart"},
		{"https://www.MYNTRA.com/tshirts/nike/123", "myntra"},
		{"https://www.nykaa.com/lakme-lipstick/p/456", "nykaa"},
	}
	for _, tc := range cases {
		t.Run(tc.wantKey, func(t *testing.T) {
			a, ok := r.Resolve(tc.reference)
			if !ok {
				t.Fatalf("Resolve(%q) = false", tc.reference)
			}
			if a.Key() != tc.wantKey {
				t.Errorf("Resolve(%q).Key() = %q, want %q", tc.reference, a.Key(), tc.wantKey)
			}
		})
	}

	t.Run("unknown domains do not resolve", func(t *testing.T) {
		if _, ok := r.Resolve("https://shop.example.com/p/widget"); ok {
			t.Error("Resolve matched an unregistered domain")
		}
	})
}

func TestRegistryImplementsInterface(t *testing.T) {
	var _ domain.AdapterRegistry = NewRegistry()
}
