package usecase

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	primaryIDPattern   = regexp.MustCompile(`^[A-Za-z0-9]{8,14}$`)
	capacityPattern    = regexp.MustCompile(`(?i)\d+\s*(GB|TB|MB)\b`)
	ramPattern         = regexp.MustCompile(`(?i)(\d+)\s*GB\s*RAM\b`)
	screenSizePattern  = regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(inch|in)\b`)
	separatorPattern   = regexp.MustCompile(`[-_+]+`)
	multiSpacePattern  = regexp.MustCompile(`\s+`)
	nonAlphanumPattern = regexp.MustCompile(`[^a-z0-9\s]`)
)

// productPathMarkers are path segments that denote a product detail page.
// The segment adjacent to a marker is the best candidate for the product name.
var productPathMarkers = map[string]bool{
	"dp": true, "product": true, "p": true, "item": true,
	"buy": true, "d": true, "itm": true, "gp": true,
}

// searchQueryParams are checked, in order, when no path segment yields a name.
var searchQueryParams = []string{"q", "query", "k", "search"}

// brandVocabulary is the curated set of brands recognized during inference.
var brandVocabulary = map[string]bool{
	"apple": true, "samsung": true, "oneplus": true, "xiaomi": true,
	"redmi": true, "realme": true, "oppo": true, "vivo": true,
	"motorola": true, "nokia": true, "google": true, "sony": true,
	"dell": true, "lenovo": true, "asus": true, "acer": true,
	"boat": true, "jbl": true, "bose": true, "sennheiser": true,
	"nike": true, "adidas": true, "puma": true, "reebok": true,
	"levis": true, "zara": true, "allen": true, "raymond": true,
	"lakme": true, "maybelline": true, "loreal": true, "nykaa": true,
	"nivea": true, "dove": true, "himalaya": true, "mamaearth": true,
	"amul": true, "nestle": true, "britannia": true, "tata": true,
	"patanjali": true, "fortune": true, "aashirvaad": true,
	"philips": true, "bajaj": true, "prestige": true, "milton": true,
}

// colorVocabulary is matched against the canonical name, first match wins.
// Multi-word colors come first so "midnight black" beats "black".
var colorVocabulary = []string{
	"midnight black", "phantom black", "space grey", "space gray",
	"rose gold", "navy blue", "sky blue", "sierra blue", "pacific blue",
	"starlight", "midnight", "graphite",
	"black", "white", "blue", "red", "green", "yellow", "pink",
	"purple", "grey", "gray", "silver", "gold", "brown", "orange",
	"beige", "maroon", "teal", "cream", "olive",
}

// clothingSizeTokens are matched case-insensitively as whole tokens.
var clothingSizeTokens = map[string]string{
	"xs": "XS", "s": "S", "m": "M", "l": "L",
	"xl": "XL", "xxl": "XXL", "xxxl": "XXXL",
	"2xl": "2XL", "3xl": "3XL",
}

// Normalizer turns raw product references into structured signatures when no
// source-native extraction applies, and backfills weak signatures.
type Normalizer struct{}

// NewNormalizer creates a new identity normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// BuildSignature produces a best-effort signature for a reference that did
// not resolve to any marketplace's native extractor.
func (n *Normalizer) BuildSignature(reference string) domain.ProductSignature {
	sig := domain.ProductSignature{
		SourceKey:      domain.SourceUnknown,
		InputReference: reference,
		CanonicalName:  n.CanonicalName(reference),
		Variant:        map[string]string{},
	}
	n.Backfill(&sig, reference)
	return sig
}

// Backfill fills any signature field that is still weak. It never overwrites
// a populated field, and it never derives brand or variant data from the
// placeholder name.
func (n *Normalizer) Backfill(sig *domain.ProductSignature, reference string) {
	if sig.Variant == nil {
		sig.Variant = map[string]string{}
	}
	if sig.CanonicalName == "" || sig.CanonicalName == domain.PlaceholderName {
		sig.CanonicalName = n.CanonicalName(reference)
	}
	if sig.PrimaryID == "" {
		sig.PrimaryID = n.ParsePrimaryID(reference)
	}
	if sig.CanonicalName == domain.PlaceholderName {
		return
	}
	if len(sig.Variant) == 0 {
		sig.Variant = n.ParseVariant(sig.CanonicalName)
	}
	if sig.Brand == "" {
		sig.Brand = n.InferBrand(sig.CanonicalName)
	}
}

// CanonicalName derives a human-readable product name from a reference.
// Resolution order: path segment adjacent to a product marker, last
// non-empty path segment, search-query parameter. Never returns "".
func (n *Normalizer) CanonicalName(reference string) string {
	u, err := url.Parse(reference)
	if err != nil {
		return domain.PlaceholderName
	}

	segments := splitPath(u.Path)
	candidate := markerAdjacentSegment(segments)

	// Identifier-looking segments are not names.
	if candidate != "" && primaryIDPattern.MatchString(candidate) {
		candidate = ""
	}

	if candidate == "" {
		for i := len(segments) - 1; i >= 0; i-- {
			seg := segments[i]
			if productPathMarkers[strings.ToLower(seg)] || primaryIDPattern.MatchString(seg) {
				continue
			}
			candidate = seg
			break
		}
	}

	if candidate == "" {
		for _, param := range searchQueryParams {
			if v := u.Query().Get(param); v != "" {
				candidate = v
				break
			}
		}
	}

	name := cleanSegment(candidate)
	if name == "" {
		return domain.PlaceholderName
	}
	return name
}

// InferBrand tokenizes the name into words longer than 2 characters and
// matches them against the brand vocabulary. Falls back to the first token.
// Best-effort: used only for confidence scoring and bonus weighting.
func (n *Normalizer) InferBrand(canonicalName string) string {
	words := strings.Fields(canonicalName)
	for _, word := range words {
		if len(word) <= 2 {
			continue
		}
		if brandVocabulary[strings.ToLower(word)] {
			return capitalize(word)
		}
	}
	if len(words) > 0 {
		return capitalize(words[0])
	}
	return ""
}

// ParsePrimaryID inspects path segments for a product marker immediately
// followed by an 8-14 character alphanumeric identifier. This is the generic
// fallback for the unknown-source case; adapters carry their own marker sets.
func (n *Normalizer) ParsePrimaryID(reference string) string {
	u, err := url.Parse(reference)
	if err != nil {
		return ""
	}
	segments := splitPath(u.Path)
	for i, seg := range segments {
		if !productPathMarkers[strings.ToLower(seg)] {
			continue
		}
		if i+1 < len(segments) && primaryIDPattern.MatchString(segments[i+1]) {
			return strings.ToUpper(segments[i+1])
		}
	}
	return ""
}

// ParseVariant runs the independent attribute extractions against a name and
// merges the results. Extraction order is fixed: capacity, ram, screen size,
// color, clothing size. The earliest extraction wins a contested key.
func (n *Normalizer) ParseVariant(canonicalName string) map[string]string {
	variant := map[string]string{}

	if m := capacityPattern.FindString(canonicalName); m != "" {
		setIfAbsent(variant, "capacity", strings.ToUpper(multiSpacePattern.ReplaceAllString(m, "")))
	}
	if m := ramPattern.FindStringSubmatch(canonicalName); m != nil {
		setIfAbsent(variant, "ram", m[1]+"GB")
	}
	if m := screenSizePattern.FindString(canonicalName); m != "" {
		setIfAbsent(variant, "screen", strings.ToLower(strings.TrimSpace(m)))
	}
	if c := matchColor(canonicalName); c != "" {
		setIfAbsent(variant, "color", c)
	}
	if s := matchClothingSize(canonicalName); s != "" {
		setIfAbsent(variant, "size", s)
	}

	return variant
}

func setIfAbsent(variant map[string]string, key, value string) {
	if _, ok := variant[key]; !ok {
		variant[key] = value
	}
}

// matchColor returns the first vocabulary color present in the name,
// title-cased per word.
func matchColor(name string) string {
	lower := strings.ToLower(name)
	for _, color := range colorVocabulary {
		idx := strings.Index(lower, color)
		if idx < 0 {
			continue
		}
		// Whole-word match only.
		if idx > 0 && isWordChar(lower[idx-1]) {
			continue
		}
		end := idx + len(color)
		if end < len(lower) && isWordChar(lower[end]) {
			continue
		}
		return titleCaseWords(color)
	}
	return ""
}

// matchClothingSize returns the first size token present in the name.
func matchClothingSize(name string) string {
	for _, word := range strings.Fields(name) {
		if size, ok := clothingSizeTokens[strings.ToLower(word)]; ok {
			return size
		}
	}
	return ""
}

func splitPath(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// markerAdjacentSegment picks the path segment next to the first product
// marker: the preceding segment when one exists (catalog URLs put the slug
// before the marker), otherwise the following one.
func markerAdjacentSegment(segments []string) string {
	for i, seg := range segments {
		if !productPathMarkers[strings.ToLower(seg)] {
			continue
		}
		if i > 0 && !productPathMarkers[strings.ToLower(segments[i-1])] {
			return segments[i-1]
		}
		if i+1 < len(segments) {
			return segments[i+1]
		}
		return ""
	}
	return ""
}

// cleanSegment decodes percent-encoding and turns separator characters
// into spaces.
func cleanSegment(segment string) string {
	if segment == "" {
		return ""
	}
	decoded, err := url.QueryUnescape(segment)
	if err != nil {
		decoded = segment
	}
	decoded = separatorPattern.ReplaceAllString(decoded, " ")
	decoded = multiSpacePattern.ReplaceAllString(decoded, " ")
	return strings.TrimSpace(decoded)
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
