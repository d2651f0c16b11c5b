package refdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// newTestServer serves a fixed catalog and counts requests per path.
func newTestServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/phone-brands":
			json.NewEncoder(w).Encode(map[string]any{"brands": []Brand{
				{ID: "brand-apple", Name: "Apple"},
				{ID: "brand-samsung", Name: "Samsung"},
			}})
		case "/api/phone-models":
			if r.Method == http.MethodGet {
				if r.URL.Query().Get("brandId") == "" {
					http.Error(w, "brandId required", http.StatusBadRequest)
					return
				}
				json.NewEncoder(w).Encode(map[string]any{"models": []Model{
					{ID: "model-1", BrandID: r.URL.Query().Get("brandId"), Name: "iPhone 14"},
				}})
				return
			}
			// CRUD verbs echo a model back.
			json.NewEncoder(w).Encode(Model{ID: "model-new", BrandID: "brand-apple", Name: "iPhone 15"})
		case "/api/phone-variants":
			json.NewEncoder(w).Encode(map[string]any{"variants": []Variant{
				{ID: "variant-1", ModelID: r.URL.Query().Get("modelId"), Storage: "128GB", RAM: "6GB", Color: "Black"},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	return NewClient(url, nil, zerolog.Nop())
}

func TestBrandsAreCached(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	for i := 0; i < 3; i++ {
		brands, err := c.Brands(context.Background())
		if err != nil {
			t.Fatalf("Brands: %v", err)
		}
		if len(brands) != 2 {
			t.Fatalf("got %d brands", len(brands))
		}
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1 (cache)", got)
	}
}

func TestModelsGatedOnBrand(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	// No parent selection: empty result, no network call.
	models, err := c.Models(context.Background(), "")
	if err != nil {
		t.Fatalf("Models(\"\"): %v", err)
	}
	if models != nil {
		t.Errorf("expected nil models for empty brand, got %v", models)
	}
	if got := hits.Load(); got != 0 {
		t.Errorf("empty-parent fetch hit the server %d times", got)
	}

	models, err = c.Models(context.Background(), "brand-apple")
	if err != nil {
		t.Fatalf("Models: %v", err)
	}
	if len(models) != 1 || models[0].BrandID != "brand-apple" {
		t.Fatalf("models = %+v", models)
	}
}

func TestVariantsGatedOnModel(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	variants, err := c.Variants(context.Background(), "")
	if err != nil || variants != nil {
		t.Fatalf("Variants(\"\") = %v, %v; want nil, nil", variants, err)
	}
	if hits.Load() != 0 {
		t.Error("empty-parent variant fetch hit the server")
	}

	variants, err = c.Variants(context.Background(), "model-1")
	if err != nil {
		t.Fatalf("Variants: %v", err)
	}
	if len(variants) != 1 || variants[0].Label() != "128GB / 6GB / Black" {
		t.Fatalf("variants = %+v", variants)
	}
}

func TestModelsCachedPerParent(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	ctx := context.Background()
	c.Models(ctx, "brand-apple")
	c.Models(ctx, "brand-apple")
	c.Models(ctx, "brand-samsung")

	if got := hits.Load(); got != 2 {
		t.Errorf("server hit %d times, want 2 (one per brand)", got)
	}
}

func TestCreateModelInvalidatesCache(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	ctx := context.Background()
	c.Models(ctx, "brand-apple") // warm
	before := hits.Load()

	created, err := c.CreateModel(ctx, Model{BrandID: "brand-apple", Name: "iPhone 15"})
	if err != nil {
		t.Fatalf("CreateModel: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created model has no id")
	}

	c.Models(ctx, "brand-apple")
	// One hit for the POST, one for the refetch after invalidation.
	if got := hits.Load(); got != before+2 {
		t.Errorf("hits = %d, want %d (cache should be invalidated)", got, before+2)
	}
}

func TestDeleteModelInvalidatesVariantsToo(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	ctx := context.Background()
	c.Variants(ctx, "model-1") // warm
	before := hits.Load()

	if err := c.DeleteModel(ctx, "model-1"); err != nil {
		t.Fatalf("DeleteModel: %v", err)
	}

	c.Variants(ctx, "model-1")
	if got := hits.Load(); got != before+2 {
		t.Errorf("hits = %d, want %d (variant cache should be invalidated)", got, before+2)
	}
}

func TestFetchErrorWrapsCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	_, err := c.Models(context.Background(), "brand-apple")
	if err == nil {
		t.Fatal("expected error")
	}
	fe, ok := err.(*FetchError)
	if !ok {
		t.Fatalf("error type %T, want *FetchError", err)
	}
	if fe.Entity != EntityModel || fe.ParentKey != "brand-apple" {
		t.Errorf("FetchError = %+v", fe)
	}
}

func TestCacheExpiry(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, &hits)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	now := time.Now()
	c.cache.now = func() time.Time { return now }

	ctx := context.Background()
	c.Brands(ctx)
	c.Brands(ctx)
	if hits.Load() != 1 {
		t.Fatalf("hits = %d before expiry", hits.Load())
	}

	now = now.Add(DefaultTTL + time.Minute)
	c.Brands(ctx)
	if got := hits.Load(); got != 2 {
		t.Errorf("hits = %d after expiry, want 2", got)
	}
}
