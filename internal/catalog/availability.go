package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// FilterInStock attaches available stock and pricing for the given business
// unit and drops products without stock. A package missing from the stock
// table counts as zero. Price lookup failures are logged and ignored; stock
// lookup failures fail the request.
func (s *Store) FilterInStock(ctx context.Context, products []Product, storeID int64) ([]Product, error) {
	if len(products) == 0 {
		return nil, nil
	}

	packageIDs := make([]int64, len(products))
	for i, p := range products {
		packageIDs[i] = p.PackageID
	}

	placeholders := make([]string, len(packageIDs))
	args := make([]interface{}, 0, len(packageIDs)+1)
	for i, id := range packageIDs {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args = append(args, id)
	}
	args = append(args, storeID)

	query := `
		SELECT embalagemid, COALESCE(estoque, 0)
		FROM estoque
		WHERE embalagemid IN (` + strings.Join(placeholders, ",") + `)
		  AND unidadenegocioid = $` + strconv.Itoa(len(packageIDs)+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock lookup: %w", err)
	}
	defer rows.Close()

	stock := make(map[int64]int, len(packageIDs))
	for rows.Next() {
		var packageID int64
		var quantity int
		if err := rows.Scan(&packageID, &quantity); err != nil {
			return nil, fmt.Errorf("stock lookup: %w", err)
		}
		stock[packageID] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stock lookup: %w", err)
	}

	prices, err := s.PricesFor(ctx, packageIDs, storeID)
	if err != nil {
		s.logger.Warn("price lookup failed, continuing without prices", "error", err)
		prices = nil
	}

	inStock := make([]Product, 0, len(products))
	for _, p := range products {
		p.Stock = stock[p.PackageID]
		if p.Stock <= 0 {
			continue
		}
		if pr, ok := prices[p.PackageID]; ok {
			prCopy := pr
			p.Prices = &prCopy
		}
		inStock = append(inStock, p)
	}

	s.logger.Info("stock check", "checked", len(products), "in_stock", len(inStock))
	return inStock, nil
}

// PricesFor returns pricing and active-offer data per package for one
// business unit. The final sale price prefers an active offer, then the
// store price, then the general price.
func (s *Store) PricesFor(ctx context.Context, packageIDs []int64, storeID int64) (map[int64]PackagePrices, error) {
	if len(packageIDs) == 0 {
		return map[int64]PackagePrices{}, nil
	}

	placeholders := make([]string, len(packageIDs))
	args := make([]interface{}, 0, len(packageIDs)+1)
	for i, id := range packageIDs {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args = append(args, id)
	}
	storeParam := "$" + strconv.Itoa(len(packageIDs)+1)
	args = append(args, storeID)

	query := `
		SELECT
			em.id,
			em.precoreferencial,
			em.precovenda,
			em.markup,
			peu.precoreferencial,
			peu.precovenda,
			peu.markup,
			peu.plugpharmaprecocontrolado,
			mo.precooferta,
			mo.descontooferta,
			mo.precounitariosemdesconto,
			mo.precounitariocomdesconto,
			mo.vigenciainicio,
			mo.vigenciatermino,
			co.nome,
			ico.tipooferta,
			ico.leve,
			ico.pague,
			CASE
				WHEN mo.precooferta IS NOT NULL
					AND (mo.vigenciatermino IS NULL OR mo.vigenciatermino >= NOW())
				THEN mo.precooferta
				WHEN peu.precovenda IS NOT NULL
				THEN peu.precovenda
				ELSE em.precovenda
			END,
			CASE
				WHEN mo.precooferta IS NOT NULL
					AND (mo.vigenciatermino IS NULL OR mo.vigenciatermino >= NOW())
				THEN true
				ELSE false
			END
		FROM embalagem em
		LEFT JOIN precoembalagemunidadenegocio peu
			ON peu.embalagemid = em.id
			AND peu.unidadenegocioid = ` + storeParam + `
		LEFT JOIN melhoroferta mo
			ON mo.embalagemid = em.id
			AND mo.unidadenegocioid = ` + storeParam + `
			AND (mo.vigenciatermino IS NULL OR mo.vigenciatermino >= NOW())
		LEFT JOIN itemcadernooferta ico
			ON ico.id = (
				SELECT ico2.id
				FROM itemcadernooferta ico2
				WHERE ico2.embalagemid = em.id
					AND ico2.cadernoofertaid = mo.cadernoofertaid
				LIMIT 1
			)
		LEFT JOIN cadernooferta co
			ON co.id = mo.cadernoofertaid
		WHERE em.id IN (` + strings.Join(placeholders, ",") + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("price lookup: %w", err)
	}
	defer rows.Close()

	prices := make(map[int64]PackagePrices, len(packageIDs))
	for rows.Next() {
		var (
			packageID                                  int64
			refPrice, salePrice, markup                sql.NullFloat64
			storeRefPrice, storeSalePrice, storeMarkup sql.NullFloat64
			controlled, offerPrice, offerDiscount      sql.NullFloat64
			priceWithoutDiscount, priceWithDiscount    sql.NullFloat64
			offerStart, offerEnd                       sql.NullTime
			offerBook, offerType                       sql.NullString
			take, pay                                  sql.NullInt64
			finalPrice                                 sql.NullFloat64
			hasOffer                                   bool
		)
		if err := rows.Scan(
			&packageID,
			&refPrice, &salePrice, &markup,
			&storeRefPrice, &storeSalePrice, &storeMarkup, &controlled,
			&offerPrice, &offerDiscount, &priceWithoutDiscount, &priceWithDiscount,
			&offerStart, &offerEnd,
			&offerBook, &offerType, &take, &pay,
			&finalPrice, &hasOffer,
		); err != nil {
			return nil, fmt.Errorf("price lookup: %w", err)
		}

		pp := PackagePrices{
			ReferencePrice:       refPrice.Float64,
			SalePrice:            salePrice.Float64,
			Markup:               markup.Float64,
			StoreReferencePrice:  storeRefPrice.Float64,
			StoreSalePrice:       storeSalePrice.Float64,
			StoreMarkup:          storeMarkup.Float64,
			ControlledPrice:      controlled.Float64,
			BestOfferPrice:       offerPrice.Float64,
			OfferDiscountPercent: offerDiscount.Float64,
			PriceWithoutDiscount: priceWithoutDiscount.Float64,
			PriceWithDiscount:    priceWithDiscount.Float64,
			OfferBookName:        offerBook.String,
			OfferType:            offerType.String,
			Take:                 take.Int64,
			Pay:                  pay.Int64,
			FinalSalePrice:       finalPrice.Float64,
			HasActiveOffer:       hasOffer,
		}
		if offerStart.Valid {
			t := offerStart.Time
			pp.OfferStart = &t
		}
		if offerEnd.Valid {
			t := offerEnd.Time
			pp.OfferEnd = &t
		}
		prices[packageID] = pp
	}
	return prices, rows.Err()
}
