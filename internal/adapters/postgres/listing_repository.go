package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"search-service/internal/contextkeys"
	"search-service/internal/core/domain"
	"search-service/internal/core/port"
)

// cardColumns is the select list shared by the search and similarity queries.
const cardColumns = `l.id, l.title, l.price, l.price_type, l.currency, l.purpose, l.status,
		l.city, l.area, l.latitude, l.longitude, l.created_at,
		c.name AS category_label, sc.name AS subcategory_label, img.url AS primary_image_url`

// enrichmentJoins attach presentation data to a result row. They are LEFT
// joins: a missing image or label degrades the field, never drops the row.
const enrichmentJoins = `
	LEFT JOIN categories c ON c.id = l.category_id
	LEFT JOIN subcategories sc ON sc.id = l.subcategory_id
	LEFT JOIN LATERAL (
		SELECT li.url FROM listing_images li
		WHERE li.listing_id = l.id AND li.is_primary
		ORDER BY li.display_order, li.id
		LIMIT 1
	) img ON true`

type ListingRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewListingRepository(pool *pgxpool.Pool, timeout time.Duration) (*ListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ListingRepository{pool: pool, timeout: timeout}, nil
}

// FindWithFilters runs the count and page queries from the same predicate set
// inside one transaction, so pagination metadata cannot drift from the rows.
func (r *ListingRepository) FindWithFilters(ctx context.Context, fs domain.FilterSet) (*domain.PaginatedListings, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ListingRepository",
		"method":    "FindWithFilters",
	})

	qb, err := applyFilterSet(fs)
	if err != nil {
		return nil, &domain.StoreError{Op: "build filter query", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM listings l %s %s", qb.joinClause(), qb.whereClause())
	var totalCount int
	if err := tx.QueryRow(ctx, countQuery, qb.args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count listings", err, port.Fields{"facets": fs.FacetNames()})
		return nil, &domain.StoreError{Op: "count listings", Err: err}
	}

	result := &domain.PaginatedListings{
		Listings:    []domain.ListingCard{},
		TotalCount:  totalCount,
		CurrentPage: fs.Page.Page,
		PerPage:     fs.Page.PerPage,
	}
	if totalCount == 0 {
		return result, nil
	}

	distanceSelect := "NULL::float8 AS distance_km"
	if qb.distanceExpr != "" {
		distanceSelect = qb.distanceExpr + " AS distance_km"
	}

	dataQuery := fmt.Sprintf(`SELECT %s, %s
		FROM listings l %s %s
		%s
		%s %s`,
		cardColumns, distanceSelect,
		qb.joinClause(), enrichmentJoins,
		qb.whereClause(),
		qb.orderClause(), qb.limitClause(fs.Page),
	)

	rows, err := tx.Query(ctx, dataQuery, qb.args...)
	if err != nil {
		repoLogger.Error("Failed to query listings page", err, port.Fields{"facets": fs.FacetNames()})
		return nil, &domain.StoreError{Op: "query listings page", Err: err}
	}
	defer rows.Close()

	cards, err := scanCards(rows, repoLogger)
	if err != nil {
		return nil, &domain.StoreError{Op: "scan listings page", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &domain.StoreError{Op: "commit transaction", Err: err}
	}

	result.Listings = cards
	return result, nil
}

// scanCards reads result rows into enriched cards. A row missing its category
// label is a taxonomy drift worth noticing, so it is logged, but the row still
// ships with the field nulled.
func scanCards(rows pgx.Rows, logger port.LoggerPort) ([]domain.ListingCard, error) {
	var cards []domain.ListingCard
	for rows.Next() {
		var card domain.ListingCard
		if err := rows.Scan(
			&card.ID, &card.Title, &card.Price, &card.PriceType, &card.Currency,
			&card.Purpose, &card.Status, &card.City, &card.Area,
			&card.Latitude, &card.Longitude, &card.CreatedAt,
			&card.CategoryLabel, &card.SubcategoryLabel, &card.PrimaryImageURL,
			&card.DistanceKm,
		); err != nil {
			return nil, fmt.Errorf("scan listing card: %w", err)
		}
		card.FormattedPrice = domain.FormatPrice(card.Price, card.Currency, card.PriceType)
		if card.CategoryLabel == nil {
			logger.Debug("Listing has no category label, degrading enrichment", port.Fields{
				"listing_id": card.ID,
			})
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// GetDetails loads one active listing together with its category attribute
// record.
func (r *ListingRepository) GetDetails(ctx context.Context, listingID int64) (*domain.ListingDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	const listingQuery = `
		SELECT l.id, l.owner_id, l.title, l.description, l.price, l.price_type, l.currency,
			l.category_id, c.kind, l.subcategory_id, l.purpose, l.status,
			l.latitude, l.longitude, l.city, l.area,
			l.views_count, l.favorites_count, l.created_at, l.updated_at
		FROM listings l
		JOIN categories c ON c.id = l.category_id
		WHERE l.id = $1 AND l.status = 'active' AND l.deleted_at IS NULL`

	var l domain.Listing
	var kind string
	err := r.pool.QueryRow(ctx, listingQuery, listingID).Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Price, &l.PriceType, &l.Currency,
		&l.CategoryID, &kind, &l.SubcategoryID, &l.Purpose, &l.Status,
		&l.Latitude, &l.Longitude, &l.City, &l.Area,
		&l.ViewsCount, &l.FavoritesCount, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "listing", ID: listingID}
		}
		return nil, &domain.StoreError{Op: "get listing", Err: err}
	}
	l.CategoryKind, _ = domain.ParseCategoryKind(kind)

	details := &domain.ListingDetails{Listing: l}
	if err := r.loadAttributes(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

// loadAttributes fetches the 1:1 extension row for the listing's kind. Every
// active listing has one; a missing row is a store-level inconsistency.
func (r *ListingRepository) loadAttributes(ctx context.Context, details *domain.ListingDetails) error {
	listingID := details.Listing.ID

	var err error
	switch details.Listing.CategoryKind {
	case domain.KindRealEstate:
		a := &domain.RealEstateAttributes{}
		err = r.pool.QueryRow(ctx, `
			SELECT property_type, bedrooms, bathrooms, property_area, furnished, COALESCE(amenities, '[]'::jsonb)
			FROM real_estate_attributes WHERE listing_id = $1`, listingID,
		).Scan(&a.PropertyType, &a.Bedrooms, &a.Bathrooms, &a.PropertyArea, &a.Furnished, &a.Amenities)
		details.RealEstate = a
	case domain.KindVehicle:
		a := &domain.VehicleAttributes{}
		err = r.pool.QueryRow(ctx, `
			SELECT make, model, year, mileage, transmission, fuel_type, seats, COALESCE(features, '[]'::jsonb)
			FROM vehicle_attributes WHERE listing_id = $1`, listingID,
		).Scan(&a.Make, &a.Model, &a.Year, &a.Mileage, &a.Transmission, &a.FuelType, &a.Seats, &a.Features)
		details.Vehicle = a
	case domain.KindService:
		a := &domain.ServiceAttributes{}
		err = r.pool.QueryRow(ctx, `
			SELECT service_type, mobile_service, experience_years
			FROM service_attributes WHERE listing_id = $1`, listingID,
		).Scan(&a.ServiceType, &a.MobileService, &a.ExperienceYears)
		details.Service = a
	case domain.KindJob:
		a := &domain.JobAttributes{}
		err = r.pool.QueryRow(ctx, `
			SELECT job_type, experience_level, industry, remote, COALESCE(benefits, '[]'::jsonb), salary_min, salary_max
			FROM job_attributes WHERE listing_id = $1`, listingID,
		).Scan(&a.JobType, &a.ExperienceLevel, &a.Industry, &a.Remote, &a.Benefits, &a.SalaryMin, &a.SalaryMax)
		details.Job = a
	case domain.KindBid:
		a := &domain.BidAttributes{}
		err = r.pool.QueryRow(ctx, `
			SELECT bid_type, project_type, budget_min, budget_max
			FROM bid_attributes WHERE listing_id = $1`, listingID,
		).Scan(&a.BidType, &a.ProjectType, &a.BudgetMin, &a.BudgetMax)
		details.Bid = a
	default:
		return &domain.StoreError{Op: "load attributes",
			Err: fmt.Errorf("listing %d has unknown category kind", listingID)}
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.StoreError{Op: "load attributes",
				Err: fmt.Errorf("listing %d has no attribute row", listingID)}
		}
		return &domain.StoreError{Op: "load attributes", Err: err}
	}
	return nil
}

// GetCategory resolves a category id.
func (r *ListingRepository) GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var c domain.Category
	var kind string
	err := r.pool.QueryRow(ctx,
		`SELECT id, slug, kind, name FROM categories WHERE id = $1`, categoryID,
	).Scan(&c.ID, &c.Slug, &kind, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "category", ID: categoryID}
		}
		return nil, &domain.StoreError{Op: "get category", Err: err}
	}

	parsed, ok := domain.ParseCategoryKind(kind)
	if !ok {
		return nil, &domain.StoreError{Op: "get category",
			Err: fmt.Errorf("category %d has unknown kind %q", categoryID, kind)}
	}
	c.Kind = parsed
	return &c, nil
}
