package marketplace

import "strings"

// Category vocabularies gate the category-restricted sources. A restricted
// adapter whose predicate rejects the signature opts out of the fan-out by
// discovering zero locations and returning no offer.

var groceryKeywords = []string{
	"milk", "bread", "eggs", "butter", "cheese", "yogurt", "curd", "paneer",
	"rice", "wheat", "flour", "atta", "oil", "sugar", "salt", "dal", "ghee",
	"shampoo", "soap", "toothpaste", "detergent",
	"snacks", "biscuits", "chips", "chocolate", "namkeen",
	"tea", "coffee", "juice", "water", "fruits", "vegetables",
}

var fashionKeywords = []string{
	"shirt", "tshirt", "t-shirt", "jeans", "pants", "trousers",
	"dress", "kurta", "saree", "lehenga", "top", "blouse",
	"shoes", "sneakers", "sandals", "boots", "heels",
	"bag", "handbag", "backpack", "wallet", "belt",
	"watch", "jewelry", "earrings", "necklace", "ring",
	"jacket", "hoodie", "sweater", "blazer", "coat",
}

var beautyKeywords = []string{
	"lipstick", "foundation", "concealer", "mascara", "eyeliner",
	"eyeshadow", "blush", "highlighter", "bronzer", "primer",
	"moisturizer", "cleanser", "serum", "toner", "face wash",
	"sunscreen", "face mask", "scrub", "cream", "lotion",
	"shampoo", "conditioner", "hair oil", "hair mask",
	"perfume", "deodorant", "body wash", "body lotion",
	"nail polish", "makeup", "skincare", "beauty",
	"kajal", "kohl",
}

func isGroceryProduct(name string) bool {
	return containsAny(name, groceryKeywords)
}

func isFashionProduct(name string) bool {
	return containsAny(name, fashionKeywords)
}

func isBeautyProduct(name string) bool {
	return containsAny(name, beautyKeywords)
}

func containsAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
