// Package census fetches tract-level geography and one measured
// variable from a statistical-geography web service.
//
// The service speaks GeoJSON: one request names a geography level, a
// variable, a year, and a state+county region, and the response is a
// FeatureCollection with one polygon feature per tract carrying the
// requested variable as a property. The fetch is a single blocking
// attempt with no retry; any failure surfaces to the caller.
package census

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
)

// DefaultBaseURL is the public statistical-geography endpoint.
const DefaultBaseURL = "https://tigerweb.geo.census.gov/geo"

// Request identifies one region/year/variable to fetch.
type Request struct {
	// Geography is the geography level, e.g. "tract".
	Geography string

	// VariableID is the measured variable, e.g. "B01003_001E"
	// (total population).
	VariableID string

	Year int

	// State and County are FIPS codes, e.g. "06" and "075".
	State, County string

	// TargetCRS is the planar coordinate reference system
	// geometries are reprojected into. It must be "EPSG:3857"
	// (Web Mercator, the default if empty) or "EPSG:4326"
	// (no reprojection).
	TargetCRS string
}

// NetworkError reports that the remote service could not be reached
// or did not answer successfully.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("statistical geography service unreachable: %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DataFormatError reports that the service answered but the response
// could not be parsed into the expected schema.
type DataFormatError struct {
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed geography response: %s: %v", e.Reason, e.Err)
	}
	return "malformed geography response: " + e.Reason
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// ErrUnsupportedCRS is returned for a TargetCRS this package has no
// projection for.
var ErrUnsupportedCRS = errors.New("unsupported coordinate reference system")

// Tract is one census tract: its identifier, the measured variable
// renamed to a single fixed value field, and its polygon geometry in
// the requested planar CRS.
type Tract struct {
	GEOID    string
	Value    float64
	Geometry orb.Geometry
}

// Tracts is a read-only set of fetched tracts. It is fetched once and
// shared by every chart that renders it; consumers must not modify it.
type Tracts struct {
	crs    string
	tracts []Tract
	minV   float64
	maxV   float64
	bound  orb.Bound
}

// NewTracts assembles a tract set from already-projected tracts. It
// exists for fixtures and offline assembly; production data comes
// from Client.Fetch.
func NewTracts(crs string, tracts ...Tract) *Tracts {
	out := &Tracts{
		crs:    crs,
		tracts: tracts,
		minV:   math.Inf(1),
		maxV:   math.Inf(-1),
	}
	for i, tr := range tracts {
		out.minV = math.Min(out.minV, tr.Value)
		out.maxV = math.Max(out.maxV, tr.Value)
		if i == 0 {
			out.bound = tr.Geometry.Bound()
		} else {
			out.bound = out.bound.Union(tr.Geometry.Bound())
		}
	}
	return out
}

// CRS returns the coordinate reference system the geometries are in.
func (t *Tracts) CRS() string { return t.crs }

// Len returns the number of tracts.
func (t *Tracts) Len() int { return len(t.tracts) }

// At returns the i'th tract.
func (t *Tracts) At(i int) Tract { return t.tracts[i] }

// ValueBounds returns the minimum and maximum of the measured value.
func (t *Tracts) ValueBounds() (min, max float64) { return t.minV, t.maxV }

// Bound returns the bounding box of all tract geometry.
func (t *Tracts) Bound() orb.Bound { return t.bound }

// Client issues requests against a statistical-geography service.
// The zero value uses DefaultBaseURL and http.DefaultClient.
type Client struct {
	// BaseURL overrides the service endpoint.
	BaseURL string

	// HTTPClient overrides the HTTP client used for the fetch.
	HTTPClient *http.Client
}

func projectionFor(crs string) (orb.Projection, error) {
	switch crs {
	case "", "EPSG:3857":
		return project.WGS84.ToMercator, nil
	case "EPSG:4326":
		return func(p orb.Point) orb.Point { return p }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCRS, crs)
}

func (c *Client) url(req Request) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{}
	q.Set("get", req.VariableID)
	q.Set("for", req.Geography+":*")
	q.Set("in", fmt.Sprintf("state:%s county:%s", req.State, req.County))
	q.Set("f", "geojson")
	return fmt.Sprintf("%s/%d/%s?%s", base, req.Year, req.Geography, q.Encode())
}

// Fetch retrieves the tracts for req, reprojects their geometry into
// req.TargetCRS, and renames the measured variable to the fixed Value
// field. It makes exactly one attempt.
func (c *Client) Fetch(req Request) (*Tracts, error) {
	if req.Geography == "" {
		req.Geography = "tract"
	}
	if req.VariableID == "" {
		return nil, &DataFormatError{Reason: "no variable requested"}
	}
	proj, err := projectionFor(req.TargetCRS)
	if err != nil {
		return nil, err
	}
	crs := req.TargetCRS
	if crs == "" {
		crs = "EPSG:3857"
	}

	u := c.url(req)
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Get(u)
	if err != nil {
		return nil, &NetworkError{u, err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{u, fmt.Errorf("unexpected status %s", resp.Status)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{u, err}
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, &DataFormatError{"response is not a GeoJSON feature collection", err}
	}
	if len(fc.Features) == 0 {
		return nil, &DataFormatError{Reason: "feature collection is empty"}
	}

	out := &Tracts{
		crs:    crs,
		tracts: make([]Tract, 0, len(fc.Features)),
		minV:   math.Inf(1),
		maxV:   math.Inf(-1),
	}
	for i, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return nil, &DataFormatError{Reason: fmt.Sprintf("feature %d has non-polygon geometry %T", i, f.Geometry)}
		}
		v, ok := numericProperty(f.Properties, req.VariableID)
		if !ok {
			return nil, &DataFormatError{Reason: fmt.Sprintf("feature %d is missing variable %s", i, req.VariableID)}
		}
		// Only the identifier and the measured value survive;
		// all other metadata properties are dropped here.
		tract := Tract{
			GEOID:    f.Properties.MustString("GEOID", ""),
			Value:    v,
			Geometry: project.Geometry(f.Geometry, proj),
		}
		out.tracts = append(out.tracts, tract)
		out.minV = math.Min(out.minV, v)
		out.maxV = math.Max(out.maxV, v)
		if len(out.tracts) == 1 {
			out.bound = tract.Geometry.Bound()
		} else {
			out.bound = out.bound.Union(tract.Geometry.Bound())
		}
	}
	return out, nil
}

// numericProperty reads a property as a float64. Statistical APIs
// frequently encode numeric variables as JSON strings, so both forms
// are accepted.
func numericProperty(p geojson.Properties, key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}
