package catalog

import "time"

// Origin of a candidate: which retrieval channel found it.
const (
	OriginIngredient  = "principio_ativo"
	OriginDescription = "descricao"
	OriginBoth        = "ambos"
)

// Product is a product/package pair retrieved for one query. It is a
// transient read-model projection, built fresh per search and never
// persisted.
type Product struct {
	ID                 int64
	Code               string
	Description        string
	Status             string
	RegistryCode       string
	ManufacturerID     int64
	IngredientID       int64
	IngredientName     string
	PackageID          int64
	PackageDescription string
	Barcode            string

	// Origin and Score are filled by the merge step; only the description
	// channel produces a score.
	Origin string
	Score  int

	// FinalScore is the positional relevance assigned after reranking.
	FinalScore int

	// Stock and Prices are attached by FilterInStock.
	Stock  int
	Prices *PackagePrices

	// Canonical classification, empty until resolved.
	Classification     string
	ClassificationID   int64
	ClassificationName string
}

// Ingredient is an active-ingredient record.
type Ingredient struct {
	ID   int64
	Name string
}

// PackagePrices carries the pricing and offer fields for one package in one
// business unit. Zero values mean the source column was null.
type PackagePrices struct {
	ReferencePrice       float64
	SalePrice            float64
	Markup               float64
	StoreReferencePrice  float64
	StoreSalePrice       float64
	StoreMarkup          float64
	ControlledPrice      float64
	BestOfferPrice       float64
	OfferDiscountPercent float64
	PriceWithoutDiscount float64
	PriceWithDiscount    float64
	OfferStart           *time.Time
	OfferEnd             *time.Time
	OfferBookName        string
	OfferType            string
	Take                 int64
	Pay                  int64
	FinalSalePrice       float64
	HasActiveOffer       bool
}
