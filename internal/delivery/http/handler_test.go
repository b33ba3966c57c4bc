package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pricelens/backend/config"
	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TestMain sets up the test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubComparer returns a canned result or error.
type stubComparer struct {
	result *domain.ComparisonResult
	err    error
}

func (s *stubComparer) Compare(ctx context.Context, reference string) (*domain.ComparisonResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func setupTestRouter(comparer Comparer) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
		RateLimit: config.RateLimitConfig{PerIP: 1000},
	}
	return SetupRouter(cfg, NewHandler(comparer, nil))
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(&stubComparer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", body["status"])
	}
}

func TestCompareEndpoint(t *testing.T) {
	comparison := &domain.ComparisonResult{
		Signature: domain.ProductSignature{CanonicalName: "apple iphone 14"},
		Offers: []domain.Offer{
			{
				SourceKey:      "amazon",
				EffectivePrice: decimal.NewFromInt(79900),
				Currency:       domain.CurrencyINR,
			},
		},
		BestBuy: &domain.BestBuy{
			SourceKey:      "amazon",
			EffectivePrice: decimal.NewFromInt(79900),
			Rationale:      []string{"Lowest price"},
		},
		SourcesChecked: 8,
	}

	post := func(router *gin.Engine, payload string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/compare", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("returns the comparison", func(t *testing.T) {
		router := setupTestRouter(&stubComparer{result: comparison})
		w := post(router, `{"reference": "https://www.amazon.in/dp/B0BDJH6GL2"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
		}
		var got domain.ComparisonResult
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		if got.Signature.CanonicalName != "apple iphone 14" {
			t.Errorf("CanonicalName = %q", got.Signature.CanonicalName)
		}
		if got.SourcesChecked != 8 {
			t.Errorf("SourcesChecked = %d, want 8", got.SourcesChecked)
		}
	})

	t.Run("missing reference is a 400", func(t *testing.T) {
		router := setupTestRouter(&stubComparer{result: comparison})
		if w := post(router, `{}`); w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		router := setupTestRouter(&stubComparer{result: comparison})
		if w := post(router, `{not json`); w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("invalid reference is a 400", func(t *testing.T) {
		router := setupTestRouter(&stubComparer{err: domain.ErrInvalidReference})
		if w := post(router, `{"reference": "not a url"}`); w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("engine failure is a 500", func(t *testing.T) {
		router := setupTestRouter(&stubComparer{err: domain.ErrSourceUnavailable})
		if w := post(router, `{"reference": "https://example.com/p/x"}`); w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
	})
}
