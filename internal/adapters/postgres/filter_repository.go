package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"search-service/internal/core/domain"
	"search-service/internal/core/port"
)

// aggregateColumns is the allow-list of attribute columns the facet menu may
// aggregate over. Anything else is a programming error, not a query.
var aggregateColumns = map[string]bool{
	"d.property_type":    true,
	"d.bedrooms":         true,
	"d.bathrooms":        true,
	"d.property_area":    true,
	"d.make":             true,
	"d.model":            true,
	"d.year":             true,
	"d.mileage":          true,
	"d.transmission":     true,
	"d.fuel_type":        true,
	"d.service_type":     true,
	"d.experience_years": true,
	"d.job_type":         true,
	"d.experience_level": true,
	"d.industry":         true,
	"d.salary_min":       true,
	"d.bid_type":         true,
	"d.project_type":     true,
	"d.budget_min":       true,
}

// FilterRepository serves the facet menu with DISTINCT and MIN/MAX aggregates
// over the active listings of one category scope.
type FilterRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewFilterRepository(pool *pgxpool.Pool, timeout time.Duration) (*FilterRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &FilterRepository{pool: pool, timeout: timeout}, nil
}

// buildScopeQuery builds the shared join/where parts for one facet-menu scope.
func (r *FilterRepository) buildScopeQuery(scope port.FacetMenuScope) (string, string, []interface{}) {
	joinClause := fmt.Sprintf("JOIN %s d ON d.listing_id = l.id", scope.Kind.AttributeTable())

	conditions := []string{"l.deleted_at IS NULL", "l.status = 'active'"}
	args := make([]interface{}, 0, 3)
	argID := 1

	conditions = append(conditions, fmt.Sprintf("l.category_id = $%d", argID))
	args = append(args, scope.CategoryID)
	argID++

	if scope.SubcategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("l.subcategory_id = $%d", argID))
		args = append(args, *scope.SubcategoryID)
		argID++
	}
	if scope.City != "" {
		conditions = append(conditions, fmt.Sprintf("l.city = $%d", argID))
		args = append(args, scope.City)
	}

	return joinClause, "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *FilterRepository) GetTotalCount(ctx context.Context, scope port.FacetMenuScope) (int, error) {
	joinClause, whereClause, args := r.buildScopeQuery(scope)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := fmt.Sprintf("SELECT COUNT(*) FROM listings l %s %s", joinClause, whereClause)
	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, &domain.StoreError{Op: "count listings for facet menu", Err: err}
	}
	return count, nil
}

func (r *FilterRepository) GetPriceRange(ctx context.Context, scope port.FacetMenuScope) (*port.RangeResult, error) {
	joinClause, whereClause, args := r.buildScopeQuery(scope)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT COALESCE(MIN(l.price), 0), COALESCE(MAX(l.price), 0)
		FROM listings l %s %s AND l.price IS NOT NULL`, joinClause, whereClause)

	var res port.RangeResult
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&res.Min, &res.Max); err != nil {
		return nil, &domain.StoreError{Op: "get price range", Err: err}
	}
	return &res, nil
}

func (r *FilterRepository) GetDistinctCities(ctx context.Context, scope port.FacetMenuScope) ([]string, error) {
	joinClause, whereClause, args := r.buildScopeQuery(scope)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT DISTINCT l.city FROM listings l %s %s AND l.city != ''
		ORDER BY l.city`, joinClause, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &domain.StoreError{Op: "get distinct cities", Err: err}
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, &domain.StoreError{Op: "scan city", Err: err}
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

func (r *FilterRepository) GetDistinctStrings(ctx context.Context, scope port.FacetMenuScope, column string) ([]string, error) {
	if !aggregateColumns[column] {
		return nil, fmt.Errorf("column %q is not aggregatable", column)
	}
	joinClause, whereClause, args := r.buildScopeQuery(scope)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT DISTINCT %[1]s FROM listings l %[2]s %[3]s AND %[1]s IS NOT NULL AND %[1]s != ''
		ORDER BY %[1]s`, column, joinClause, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &domain.StoreError{Op: "get distinct values", Err: err}
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &domain.StoreError{Op: "scan distinct value", Err: err}
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *FilterRepository) GetDistinctInts(ctx context.Context, scope port.FacetMenuScope, column string) ([]int, error) {
	if !aggregateColumns[column] {
		return nil, fmt.Errorf("column %q is not aggregatable", column)
	}
	joinClause, whereClause, args := r.buildScopeQuery(scope)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT DISTINCT %[1]s FROM listings l %[2]s %[3]s AND %[1]s IS NOT NULL
		ORDER BY %[1]s`, column, joinClause, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &domain.StoreError{Op: "get distinct ints", Err: err}
	}
	defer rows.Close()

	var values []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, &domain.StoreError{Op: "scan distinct int", Err: err}
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *FilterRepository) GetAttributeRange(ctx context.Context, scope port.FacetMenuScope, column string) (*port.RangeResult, error) {
	if !aggregateColumns[column] {
		return nil, fmt.Errorf("column %q is not aggregatable", column)
	}
	joinClause, whereClause, args := r.buildScopeQuery(scope)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT COALESCE(MIN(%[1]s), 0), COALESCE(MAX(%[1]s), 0)
		FROM listings l %[2]s %[3]s AND %[1]s IS NOT NULL`, column, joinClause, whereClause)

	var res port.RangeResult
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&res.Min, &res.Max); err != nil {
		return nil, &domain.StoreError{Op: "get attribute range", Err: err}
	}
	return &res, nil
}

func (r *FilterRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, slug, kind, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, &domain.StoreError{Op: "get categories", Err: err}
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		var kind string
		if err := rows.Scan(&c.ID, &c.Slug, &kind, &c.Name); err != nil {
			return nil, &domain.StoreError{Op: "scan category", Err: err}
		}
		c.Kind, _ = domain.ParseCategoryKind(kind)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *FilterRepository) GetSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT id, category_id, slug, name FROM subcategories WHERE category_id = $1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, &domain.StoreError{Op: "get subcategories", Err: err}
	}
	defer rows.Close()

	var subcategories []domain.Subcategory
	for rows.Next() {
		var sc domain.Subcategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Slug, &sc.Name); err != nil {
			return nil, &domain.StoreError{Op: "scan subcategory", Err: err}
		}
		subcategories = append(subcategories, sc)
	}
	return subcategories, rows.Err()
}
