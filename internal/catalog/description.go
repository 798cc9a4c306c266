package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

const maxResults = 100

const (
	tokenMatchPoints  = 10
	phraseMatchPoints = 100
)

// SearchByDescription runs the description retrieval channel: a disjunctive
// match over the expanded token set plus the full normalized phrase, scored
// in SQL (10 points per matched token, 100 for a full-phrase match). Only
// active products are returned, ordered by score descending then description
// ascending, capped at 100 rows. An empty token set returns no candidates.
func (s *Store) SearchByDescription(ctx context.Context, tokens []string, phrase string) ([]Product, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	cond, scoreExpr, args := descriptionPredicate(tokens, phrase)

	query := fmt.Sprintf(`
		SELECT
			p.id, p.codigo, p.descricao, p.status, p.registroms, p.fabricanteid,
			pa.id, pa.nome,
			em.id, em.descricao, em.codigobarras,
			%s AS relevancia
		FROM produto p
		LEFT JOIN principioativo pa ON p.principioativoid = pa.id
		INNER JOIN embalagem em ON em.produtoid = p.id
		WHERE (%s)
		  AND p.status = 'A'
		ORDER BY relevancia DESC, p.descricao ASC
		LIMIT %d`, scoreExpr, cond, maxResults)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("description search: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows, true)
	if err != nil {
		return nil, fmt.Errorf("description search: %w", err)
	}
	return products, nil
}

// descriptionPredicate builds the OR condition, the relevance expression and
// the positional parameters for the description channel. The phrase
// parameter is always last.
func descriptionPredicate(tokens []string, phrase string) (cond string, scoreExpr string, args []interface{}) {
	conds := make([]string, 0, len(tokens)+1)
	scores := make([]string, 0, len(tokens)+1)
	args = make([]interface{}, 0, len(tokens)+1)

	for i, tok := range tokens {
		ph := "$" + strconv.Itoa(i+1)
		conds = append(conds, "p.descricao ILIKE "+ph)
		scores = append(scores, fmt.Sprintf("CASE WHEN p.descricao ILIKE %s THEN %d ELSE 0 END", ph, tokenMatchPoints))
		args = append(args, "%"+tok+"%")
	}

	ph := "$" + strconv.Itoa(len(tokens)+1)
	conds = append(conds, "p.descricao ILIKE "+ph)
	scores = append(scores, fmt.Sprintf("CASE WHEN p.descricao ILIKE %s THEN %d ELSE 0 END", ph, phraseMatchPoints))
	args = append(args, "%"+phrase+"%")

	return strings.Join(conds, " OR "), "(" + strings.Join(scores, " + ") + ")", args
}

// scanProducts reads product/package rows; withScore expects the trailing
// relevance column produced by the description channel.
func scanProducts(rows *sql.Rows, withScore bool) ([]Product, error) {
	var products []Product
	for rows.Next() {
		var (
			p              Product
			registry       sql.NullString
			manufacturerID sql.NullInt64
			ingredientID   sql.NullInt64
			ingredientName sql.NullString
			barcode        sql.NullString
			pkgDescription sql.NullString
			score          sql.NullInt64
		)
		dest := []interface{}{
			&p.ID, &p.Code, &p.Description, &p.Status, &registry, &manufacturerID,
			&ingredientID, &ingredientName,
			&p.PackageID, &pkgDescription, &barcode,
		}
		if withScore {
			dest = append(dest, &score)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		p.RegistryCode = registry.String
		p.ManufacturerID = manufacturerID.Int64
		p.IngredientID = ingredientID.Int64
		p.IngredientName = ingredientName.String
		p.PackageDescription = pkgDescription.String
		p.Barcode = barcode.String
		p.Score = int(score.Int64)
		products = append(products, p)
	}
	return products, rows.Err()
}
