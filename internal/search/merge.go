package search

import (
	"sort"

	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
)

type productKey struct {
	productID int64
	packageID int64
}

// Merge joins the two retrieval channels into one deduplicated candidate
// list. Ingredient results come first with origin "principio_ativo"; a
// description result for the same product/package pair promotes the origin
// to "ambos" and attaches the description relevance score instead of adding
// a duplicate. Description-only results keep origin "descricao". The merged
// list is stably ordered by score descending, so unscored ingredient-only
// rows keep their channel order at the tail.
func Merge(ingredient, description []catalog.Product) []catalog.Product {
	merged := make([]catalog.Product, 0, len(ingredient)+len(description))
	index := make(map[productKey]int, len(ingredient))

	for _, p := range ingredient {
		key := productKey{p.ID, p.PackageID}
		if _, ok := index[key]; ok {
			continue
		}
		p.Origin = catalog.OriginIngredient
		index[key] = len(merged)
		merged = append(merged, p)
	}
	for _, p := range description {
		key := productKey{p.ID, p.PackageID}
		if i, ok := index[key]; ok {
			merged[i].Origin = catalog.OriginBoth
			merged[i].Score = p.Score
			continue
		}
		p.Origin = catalog.OriginDescription
		index[key] = len(merged)
		merged = append(merged, p)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	return merged
}
