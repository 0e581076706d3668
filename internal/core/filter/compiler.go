// Package filter compiles raw request parameters into an immutable, typed
// domain.FilterSet. Every facet is opt-in: unrecognized parameters are
// ignored, recognized ones must pass their declared coercion or the whole
// request is rejected with per-field reasons.
package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"search-service/internal/core/domain"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 50
)

var baseFacets = []domain.FacetDef{
	{Param: "city", Column: "l.city", Type: domain.FacetText},
	{Param: "area", Column: "l.area", Type: domain.FacetText},
	{Param: "purpose", Column: "l.purpose", Type: domain.FacetEnum, Enum: domain.Purposes},
	{Param: "status", Column: "l.status", Type: domain.FacetEnum, Enum: domain.Statuses},
	{Param: "price_type", Column: "l.price_type", Type: domain.FacetEnum, Enum: domain.PriceTypes},
	{Param: "price", Column: "l.price", Type: domain.FacetFloatRange},
}

// categoryScopedParams is the union of every kind's facet parameters; a
// request naming one of these without a category is rejected, since the
// matching attribute join would be missing.
var categoryScopedParams = func() map[string]bool {
	scoped := make(map[string]bool)
	for _, k := range []domain.CategoryKind{
		domain.KindRealEstate, domain.KindVehicle, domain.KindService, domain.KindJob, domain.KindBid,
	} {
		for _, def := range k.Facets() {
			scoped[def.Param] = true
			scoped["min_"+def.Param] = true
			scoped["max_"+def.Param] = true
		}
	}
	return scoped
}()

// Compile validates and coerces params into a FilterSet scoped to one
// category kind (nil kind means all categories). The returned error, when not
// nil, is always a *domain.ValidationError.
func Compile(kind *domain.CategoryKind, params url.Values) (domain.FilterSet, error) {
	c := compiler{
		params: params,
		verr:   domain.NewValidationError(),
	}

	fs := domain.FilterSet{Kind: kind}

	c.compileIDFacet(&fs, "category_id", "l.category_id")
	c.compileIDFacet(&fs, "subcategory_id", "l.subcategory_id")

	if kw := strings.TrimSpace(params.Get("keyword")); kw != "" {
		fs.Predicates = append(fs.Predicates, domain.Predicate{
			Facet: "keyword", Op: domain.OpKeyword, Value: kw,
		})
	}

	for _, def := range baseFacets {
		c.compileFacet(&fs, def)
	}
	if kind != nil {
		for _, def := range kind.Facets() {
			c.compileFacet(&fs, def)
		}
	} else {
		for param := range params {
			if categoryScopedParams[param] {
				c.verr.Add(param, "facet requires a category")
			}
		}
	}

	fs.Geo = c.compileGeo()
	fs.Sort = c.compileSort(kind, fs.Geo != nil)
	fs.Page = c.compilePage()

	if c.verr.HasErrors() {
		return domain.FilterSet{}, c.verr
	}
	return fs, nil
}

type compiler struct {
	params url.Values
	verr   *domain.ValidationError
}

func (c *compiler) compileFacet(fs *domain.FilterSet, def domain.FacetDef) {
	switch def.Type {
	case domain.FacetText:
		if v := strings.TrimSpace(c.params.Get(def.Param)); v != "" {
			c.add(fs, def, domain.OpEq, v)
		}

	case domain.FacetEnum:
		v := strings.TrimSpace(c.params.Get(def.Param))
		if v == "" {
			return
		}
		for _, allowed := range def.Enum {
			if v == allowed {
				if def.Param == "status" {
					fs.StatusPinned = true
				}
				c.add(fs, def, domain.OpEq, v)
				return
			}
		}
		c.verr.Add(def.Param, fmt.Sprintf("must be one of: %s", strings.Join(def.Enum, ", ")))

	case domain.FacetBool:
		v := strings.TrimSpace(c.params.Get(def.Param))
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.verr.Add(def.Param, "must be a boolean")
			return
		}
		c.add(fs, def, domain.OpEq, b)

	case domain.FacetIntRange:
		c.compileIntRange(fs, def)

	case domain.FacetFloatRange:
		c.compileFloatRange(fs, def)

	case domain.FacetArray:
		for _, v := range c.arrayValues(def.Param) {
			c.add(fs, def, domain.OpContains, v)
		}
	}
}

// compileIntRange handles the min_X/max_X pair plus a bare value, where the
// "N+" shape compiles to a lower bound instead of an equality.
func (c *compiler) compileIntRange(fs *domain.FilterSet, def domain.FacetDef) {
	if v := strings.TrimSpace(c.params.Get("min_" + def.Param)); v != "" {
		if n, ok := c.parseInt("min_"+def.Param, v); ok {
			c.add(fs, def, domain.OpGTE, n)
		}
	}
	if v := strings.TrimSpace(c.params.Get("max_" + def.Param)); v != "" {
		if n, ok := c.parseInt("max_"+def.Param, v); ok {
			c.add(fs, def, domain.OpLTE, n)
		}
	}

	v := strings.TrimSpace(c.params.Get(def.Param))
	if v == "" {
		return
	}
	if open, found := strings.CutSuffix(v, "+"); found {
		if n, ok := c.parseInt(def.Param, open); ok {
			c.add(fs, def, domain.OpGTE, n)
		}
		return
	}
	if n, ok := c.parseInt(def.Param, v); ok {
		c.add(fs, def, domain.OpEq, n)
	}
}

func (c *compiler) compileFloatRange(fs *domain.FilterSet, def domain.FacetDef) {
	if v := strings.TrimSpace(c.params.Get("min_" + def.Param)); v != "" {
		if f, ok := c.parseFloat("min_"+def.Param, v); ok {
			c.add(fs, def, domain.OpGTE, f)
		}
	}
	if v := strings.TrimSpace(c.params.Get("max_" + def.Param)); v != "" {
		if f, ok := c.parseFloat("max_"+def.Param, v); ok {
			c.add(fs, def, domain.OpLTE, f)
		}
	}
}

func (c *compiler) compileIDFacet(fs *domain.FilterSet, param, column string) {
	v := strings.TrimSpace(c.params.Get(param))
	if v == "" {
		return
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id < 1 {
		c.verr.Add(param, "must be a positive integer")
		return
	}
	fs.Predicates = append(fs.Predicates, domain.Predicate{
		Facet: param, Column: column, Op: domain.OpEq, Value: id,
	})
}

// compileGeo builds the radius filter. The triple is all-or-nothing: a
// partial lat/lng/radius set is silently skipped, but any present value must
// still parse.
func (c *compiler) compileGeo() *domain.GeoFilter {
	latStr := strings.TrimSpace(c.params.Get("lat"))
	lngStr := strings.TrimSpace(c.params.Get("lng"))
	radStr := strings.TrimSpace(c.params.Get("radius"))

	var lat, lng, radius float64
	var ok bool
	if latStr != "" {
		if lat, ok = c.parseFloat("lat", latStr); ok && (lat < -90 || lat > 90) {
			c.verr.Add("lat", "must be between -90 and 90")
		}
	}
	if lngStr != "" {
		if lng, ok = c.parseFloat("lng", lngStr); ok && (lng < -180 || lng > 180) {
			c.verr.Add("lng", "must be between -180 and 180")
		}
	}
	if radStr != "" {
		if radius, ok = c.parseFloat("radius", radStr); ok && radius <= 0 {
			c.verr.Add("radius", "must be greater than zero")
		}
	}

	if latStr == "" || lngStr == "" || radStr == "" || c.verr.HasErrors() {
		return nil
	}
	return &domain.GeoFilter{Lat: lat, Lng: lng, RadiusKm: radius}
}

func (c *compiler) compileSort(kind *domain.CategoryKind, hasGeo bool) domain.SortSpec {
	allowed := map[string]string{
		"created_at":      "l.created_at",
		"price":           "l.price",
		"views_count":     "l.views_count",
		"favorites_count": "l.favorites_count",
	}
	if kind != nil {
		allowed = kind.SortColumns()
	}

	spec := domain.SortSpec{Column: "l.created_at", Direction: "DESC"}

	if sortBy := strings.TrimSpace(c.params.Get("sort_by")); sortBy != "" {
		column, ok := allowed[sortBy]
		if !ok {
			c.verr.Add("sort_by", "unknown sort column")
		} else {
			spec.Column = column
			spec.Direction = "ASC"
			spec.Explicit = true
		}
	}

	switch dir := strings.ToLower(strings.TrimSpace(c.params.Get("sort_direction"))); dir {
	case "":
	case "asc":
		spec.Direction = "ASC"
	case "desc":
		spec.Direction = "DESC"
	default:
		c.verr.Add("sort_direction", "must be asc or desc")
	}

	// A radius filter switches on ascending-distance ordering unless the
	// caller explicitly chose a sort key.
	if hasGeo && !spec.Explicit {
		spec.ByDistance = true
	}
	return spec
}

func (c *compiler) compilePage() domain.PageSpec {
	spec := domain.PageSpec{Page: 1, PerPage: DefaultPerPage}

	if v := strings.TrimSpace(c.params.Get("page")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.verr.Add("page", "must be a positive integer")
		} else {
			spec.Page = n
		}
	}
	if v := strings.TrimSpace(c.params.Get("per_page")); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil || n < 1:
			c.verr.Add("per_page", "must be a positive integer")
		case n > MaxPerPage:
			spec.PerPage = MaxPerPage
		default:
			spec.PerPage = n
		}
	}
	return spec
}

// arrayValues collects repeated values for a multi-valued facet, accepting
// both `amenities=a&amenities=b` and the bracketed `amenities[]=a` shape.
func (c *compiler) arrayValues(param string) []string {
	var out []string
	for _, raw := range append(c.params[param], c.params[param+"[]"]...) {
		if v := strings.TrimSpace(raw); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c *compiler) add(fs *domain.FilterSet, def domain.FacetDef, op domain.Op, value any) {
	fs.Predicates = append(fs.Predicates, domain.Predicate{
		Facet: def.Param, Column: def.Column, Op: op, Value: value,
	})
}

func (c *compiler) parseInt(field, v string) (int, bool) {
	n, err := strconv.Atoi(v)
	if err != nil {
		c.verr.Add(field, "must be an integer")
		return 0, false
	}
	return n, true
}

func (c *compiler) parseFloat(field, v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.verr.Add(field, "must be a number")
		return 0, false
	}
	return f, true
}
