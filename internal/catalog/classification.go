package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ClassificationRow links a product to a raw classification id and, when
// determinable, a canonical type.
type ClassificationRow struct {
	ProductID          int64
	ClassificationID   int64
	ClassificationName string
	Canonical          string
}

// Source identifies the table and column that name a product's raw
// classification, discovered through schema introspection.
type Source struct {
	Table      string
	NameColumn string
}

// ManualClassifications joins the per-product classification ids with the
// tenant-scoped canonical mapping table. A missing mapping table is a normal
// "no data" outcome; any other failure is returned.
func (s *Store) ManualClassifications(ctx context.Context, productIDs []int64, tenantID string) ([]ClassificationRow, error) {
	if len(productIDs) == 0 || tenantID == "" {
		return nil, nil
	}

	placeholders := make([]string, len(productIDs))
	args := make([]interface{}, 0, len(productIDs)+1)
	for i, id := range productIDs {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args = append(args, id)
	}
	args = append(args, tenantID)

	query := `
		SELECT cp.produtoid, cp.classificacaoid, ccm.tipo_canonico
		FROM classificacaoproduto cp
		LEFT JOIN classificacao_canonica_map ccm
			ON ccm.classificacaoid_origem = cp.classificacaoid
			AND ccm.cliente_id = $` + strconv.Itoa(len(productIDs)+1) + `
		WHERE cp.produtoid IN (` + strings.Join(placeholders, ",") + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			s.logger.Debug("classification mapping table missing, skipping manual mapping")
			return nil, nil
		}
		return nil, fmt.Errorf("manual classification: %w", err)
	}
	defer rows.Close()

	return scanClassificationRows(rows, false)
}

// ClassificationSource discovers which "classific*" table carries the raw
// classification names. The result is memoized for the process lifetime
// (including the "no such table" answer); ResetClassificationSource clears
// it for tests.
func (s *Store) ClassificationSource(ctx context.Context) (*Source, error) {
	s.sourceMu.Lock()
	defer s.sourceMu.Unlock()
	if s.sourceKnown {
		return s.source, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT c.table_name, c.column_name
		FROM information_schema.columns c
		JOIN information_schema.tables t
			ON t.table_schema = c.table_schema
			AND t.table_name = c.table_name
		WHERE c.table_schema = 'public'
			AND t.table_type = 'BASE TABLE'
			AND c.table_name LIKE 'classific%'
			AND c.table_name NOT IN ('classificacaoproduto', 'classificacao_canonica_map')
			AND c.column_name IN ('nome', 'descricao')
		ORDER BY
			CASE WHEN c.table_name = 'classificacao' THEN 0 ELSE 1 END,
			CASE WHEN c.column_name = 'nome' THEN 0 ELSE 1 END
		LIMIT 1`)

	var src Source
	if err := row.Scan(&src.Table, &src.NameColumn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.source = nil
			s.sourceKnown = true
			return nil, nil
		}
		return nil, fmt.Errorf("classification source discovery: %w", err)
	}

	s.source = &src
	s.sourceKnown = true
	s.logger.Info("classification source discovered", "table", src.Table, "column", src.NameColumn)
	return s.source, nil
}

// ResetClassificationSource clears the memoized discovery result.
func (s *Store) ResetClassificationSource() {
	s.sourceMu.Lock()
	defer s.sourceMu.Unlock()
	s.source = nil
	s.sourceKnown = false
}

// InferClassificationsByName resolves canonical types by pattern-matching the
// raw classification names of the discovered source table. Returns no rows
// when no source table exists.
func (s *Store) InferClassificationsByName(ctx context.Context, productIDs []int64) ([]ClassificationRow, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	src, err := s.ClassificationSource(ctx)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, nil
	}

	placeholders := make([]string, len(productIDs))
	args := make([]interface{}, 0, len(productIDs))
	for i, id := range productIDs {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args = append(args, id)
	}

	table := quoteIdent(src.Table)
	column := quoteIdent(src.NameColumn)

	query := `
		SELECT
			cp.produtoid,
			cp.classificacaoid,
			cls.` + column + `,
			CASE
				WHEN cls.` + column + ` ILIKE '%gener%' THEN 'GENERICO'
				WHEN cls.` + column + ` ILIKE '%simil%' THEN 'SIMILAR'
				WHEN cls.` + column + ` ILIKE '%refer%'
					OR cls.` + column + ` ILIKE '%marca%'
					OR cls.` + column + ` ILIKE '%etic%'
					OR cls.` + column + ` ILIKE '%inovador%'
					OR cls.` + column + ` ILIKE '%patente%' THEN 'REFERENCIA'
				ELSE NULL
			END
		FROM classificacaoproduto cp
		LEFT JOIN ` + table + ` cls ON cls.id = cp.classificacaoid
		WHERE cp.produtoid IN (` + strings.Join(placeholders, ",") + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("classification inference: %w", err)
	}
	defer rows.Close()

	return scanClassificationRows(rows, true)
}

func scanClassificationRows(rows *sql.Rows, withName bool) ([]ClassificationRow, error) {
	var out []ClassificationRow
	for rows.Next() {
		var (
			r         ClassificationRow
			classID   sql.NullInt64
			name      sql.NullString
			canonical sql.NullString
		)
		dest := []interface{}{&r.ProductID, &classID}
		if withName {
			dest = append(dest, &name)
		}
		dest = append(dest, &canonical)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		r.ClassificationID = classID.Int64
		r.ClassificationName = name.String
		r.Canonical = canonical.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func quoteIdent(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
