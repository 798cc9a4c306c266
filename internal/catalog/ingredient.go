package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Retrieval methods reported in response metadata.
const (
	MethodDescription        = "descricao"
	MethodIngredient         = "principio_ativo"
	MethodIngredientNoForm   = "principio_ativo_sem_forma"
	MethodIngredientExpanded = "principio_ativo_expandido"
)

// IngredientSearchResult is the outcome of the active-ingredient channel.
// Found=false is a normal "no data" outcome, not an error.
type IngredientSearchResult struct {
	Found       bool
	Products    []Product
	Ingredients []Ingredient
	Method      string
}

// SearchByIngredient runs the active-ingredient retrieval channel: resolve
// ingredient records whose name contains the residual text, then fetch their
// active products. When form variants are given the description must match
// one of them; if that filter eliminates everything, the search is retried
// without it (the form detection is lexical and can over-filter).
func (s *Store) SearchByIngredient(ctx context.Context, ingredientText string, formVariants []string) (IngredientSearchResult, error) {
	none := IngredientSearchResult{Method: MethodIngredient}
	if strings.TrimSpace(ingredientText) == "" {
		return none, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT id, nome
		FROM principioativo
		WHERE nome ILIKE $1
		ORDER BY nome`, "%"+ingredientText+"%")
	if err != nil {
		return none, fmt.Errorf("ingredient lookup: %w", err)
	}
	defer rows.Close()

	var ingredients []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name); err != nil {
			return none, fmt.Errorf("ingredient lookup: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return none, fmt.Errorf("ingredient lookup: %w", err)
	}
	if len(ingredients) == 0 {
		return none, nil
	}

	ids := make([]int64, len(ingredients))
	for i, ing := range ingredients {
		ids[i] = ing.ID
	}

	result, err := s.productsByIngredientIDs(ctx, ids, formVariants, MethodIngredient, MethodIngredientNoForm)
	if err != nil {
		return none, err
	}
	result.Ingredients = ingredients
	return result, nil
}

// SearchByIngredientIDs fetches products for already-known ingredient ids.
// Used to widen the result set with siblings of the ingredients the
// description channel discovered.
func (s *Store) SearchByIngredientIDs(ctx context.Context, ids []int64, formVariants []string) (IngredientSearchResult, error) {
	if len(ids) == 0 {
		return IngredientSearchResult{Method: MethodIngredientExpanded}, nil
	}
	return s.productsByIngredientIDs(ctx, ids, formVariants, MethodIngredientExpanded, MethodIngredientExpanded)
}

func (s *Store) productsByIngredientIDs(ctx context.Context, ids []int64, formVariants []string, method, fallbackMethod string) (IngredientSearchResult, error) {
	none := IngredientSearchResult{Method: method}

	products, err := s.queryProductsByIngredient(ctx, ids, formVariants)
	if err != nil {
		return none, err
	}

	// Fallback: the form filter can be too strict when the catalog words
	// the form differently than the lexicon.
	if len(products) == 0 && len(formVariants) > 0 {
		s.logger.Debug("ingredient search retrying without form filter", "ingredient_ids", len(ids))
		products, err = s.queryProductsByIngredient(ctx, ids, nil)
		if err != nil {
			return none, err
		}
		if len(products) > 0 {
			return IngredientSearchResult{Found: true, Products: products, Method: fallbackMethod}, nil
		}
		return none, nil
	}

	if len(products) == 0 {
		return none, nil
	}
	return IngredientSearchResult{Found: true, Products: products, Method: method}, nil
}

func (s *Store) queryProductsByIngredient(ctx context.Context, ids []int64, formVariants []string) ([]Product, error) {
	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+len(formVariants))
	for i, id := range ids {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args = append(args, id)
	}

	query := `
		SELECT
			p.id, p.codigo, p.descricao, p.status, p.registroms, p.fabricanteid,
			pa.id, pa.nome,
			em.id, em.descricao, em.codigobarras
		FROM produto p
		INNER JOIN principioativo pa ON p.principioativoid = pa.id
		INNER JOIN embalagem em ON em.produtoid = p.id
		WHERE pa.id IN (` + strings.Join(placeholders, ",") + `)
		  AND p.status = 'A'`

	if len(formVariants) > 0 {
		formConds := make([]string, len(formVariants))
		for i, v := range formVariants {
			formConds[i] = "p.descricao ILIKE $" + strconv.Itoa(len(ids)+i+1)
			args = append(args, "%"+v+"%")
		}
		query += " AND (" + strings.Join(formConds, " OR ") + ")"
	}

	query += fmt.Sprintf(" ORDER BY p.descricao LIMIT %d", maxResults)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ingredient search: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows, false)
	if err != nil {
		return nil, fmt.Errorf("ingredient search: %w", err)
	}
	return products, nil
}
