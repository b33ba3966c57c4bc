package fetch

import (
	"context"
	"testing"

	"github.com/pricelens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLExtractorExtract(t *testing.T) {
	e := NewHTMLExtractor()
	ctx := context.Background()

	t.Run("prefers open graph metadata", func(t *testing.T) {
		page := `<html><head>
			<title>Apple iPhone 14 - Buy Online | BigShop</title>
			<meta property="og:title" content="Apple iPhone 14 (128GB, Blue)">
			<meta property="og:brand" content="Apple">
			<meta property="product:price:amount" content="79900">
			<meta property="product:price:currency" content="INR">
		</head><body></body></html>`

		info, err := e.Extract(ctx, page, "https://shop.example/p/iphone")
		require.NoError(t, err)
		assert.Equal(t, "Apple iPhone 14 (128GB, Blue)", info.Name)
		assert.Equal(t, "Apple", info.Brand)
		assert.Equal(t, 79900.0, info.Price)
		assert.Equal(t, "INR", info.Currency)
	})

	t.Run("falls back to cleaned document title", func(t *testing.T) {
		page := `<html><head><title>Sony WH-1000XM5 | Audio Store</title></head></html>`

		info, err := e.Extract(ctx, page, "https://shop.example/p/sony")
		require.NoError(t, err)
		assert.Equal(t, "Sony WH-1000XM5", info.Name)
	})

	t.Run("reads itemprop fallbacks", func(t *testing.T) {
		page := `<html><head>
			<title>Widget</title>
			<meta itemprop="brand" content="Acme">
			<meta itemprop="price" content="249.50">
			<meta itemprop="sku" content="ACME-42">
		</head></html>`

		info, err := e.Extract(ctx, page, "https://shop.example/p/widget")
		require.NoError(t, err)
		assert.Equal(t, "Acme", info.Brand)
		assert.Equal(t, 249.50, info.Price)
		assert.Equal(t, "ACME-42", info.SKU)
	})

	t.Run("ignores unparseable prices", func(t *testing.T) {
		page := `<html><head>
			<title>Widget</title>
			<meta itemprop="price" content="₹1,299">
		</head></html>`

		info, err := e.Extract(ctx, page, "https://shop.example/p/widget")
		require.NoError(t, err)
		assert.Zero(t, info.Price)
	})

	t.Run("nameless pages fail extraction", func(t *testing.T) {
		_, err := e.Extract(ctx, `<html><body><p>nothing here</p></body></html>`, "https://shop.example")
		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	})

	t.Run("canceled context aborts extraction", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.Extract(canceled, "<html></html>", "https://shop.example")
		assert.Error(t, err)
	})
}
