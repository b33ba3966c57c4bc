package fetch

import (
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pricelens/backend/internal/domain"
)

// HTMLExtractor pulls a partial product description out of page markup:
// Open Graph tags, price metadata and the document title. It is the
// non-AI fallback in the extractor chain.
type HTMLExtractor struct{}

// NewHTMLExtractor creates the markup-based extractor.
func NewHTMLExtractor() *HTMLExtractor { return &HTMLExtractor{} }

// Extract parses the content and returns whatever product fields the markup
// exposes. Returns ErrExtractionFailed when not even a name is present.
func (e *HTMLExtractor) Extract(ctx context.Context, rawContent, reference string) (*domain.ExtractedProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawContent))
	if err != nil {
		return nil, domain.ErrExtractionFailed
	}

	info := &domain.ExtractedProduct{}

	if v, ok := metaContent(doc, `meta[property="og:title"]`); ok {
		info.Name = v
	} else if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		info.Name = cleanTitle(title)
	}

	if v, ok := metaContent(doc, `meta[property="og:brand"]`); ok {
		info.Brand = v
	} else if v, ok := metaContent(doc, `meta[itemprop="brand"]`); ok {
		info.Brand = v
	}

	if v, ok := metaContent(doc, `meta[property="product:price:amount"]`); ok {
		if price, err := strconv.ParseFloat(v, 64); err == nil && price > 0 {
			info.Price = price
		}
	} else if v, ok := metaContent(doc, `meta[itemprop="price"]`); ok {
		if price, err := strconv.ParseFloat(v, 64); err == nil && price > 0 {
			info.Price = price
		}
	}

	if v, ok := metaContent(doc, `meta[property="product:price:currency"]`); ok {
		info.Currency = v
	}

	if v, ok := metaContent(doc, `meta[itemprop="sku"]`); ok {
		info.SKU = v
	}

	if info.Name == "" {
		return nil, domain.ErrExtractionFailed
	}
	return info, nil
}

func metaContent(doc *goquery.Document, selector string) (string, bool) {
	v, ok := doc.Find(selector).First().Attr("content")
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// cleanTitle strips the site-name suffix commonly appended to page titles.
func cleanTitle(title string) string {
	for _, sep := range []string{" | ", " - Buy ", " : "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
			break
		}
	}
	return strings.TrimSpace(title)
}
