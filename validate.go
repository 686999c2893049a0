package valhalla

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// checkStruct runs tag-expressible checks (lat/lon bounds, location counts,
// required costing) and translates the first violation into one of the
// package's named validation errors.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ferrs validator.ValidationErrors
	if !errors.As(err, &ferrs) || len(ferrs) == 0 {
		return err
	}
	return translateFieldError(ferrs[0])
}

func translateFieldError(e validator.FieldError) error {
	switch e.Field() {
	case "Lat":
		return fmt.Errorf("%w: %s = %v", ErrLatitudeRange, wirePath(e.Namespace()), e.Value())
	case "Lon":
		return fmt.Errorf("%w: %s = %v", ErrLongitudeRange, wirePath(e.Namespace()), e.Value())
	case "Locations":
		return fmt.Errorf("%w: %s requires at least %s", ErrTooFewLocations, wirePath(e.Namespace()), e.Param())
	case "Costing":
		return ErrCostingRequired
	}
	return fmt.Errorf("invalid field %s: failed %q", wirePath(e.Namespace()), e.Tag())
}

// wirePath renders a validator namespace like "RouteRequest.Locations[2].Lat"
// as the wire-side path "locations[2].lat".
func wirePath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}

// checkLocationExtras enforces heading, heading tolerance and radius bounds
// for a route location. Locate requests intentionally skip these checks: the
// remote service does not apply the fields there, and the original API
// surface validates them only on routing.
func checkLocationExtras(index int, loc Location) error {
	if loc.Heading != nil && (*loc.Heading < 0 || *loc.Heading > 360) {
		return fmt.Errorf("%w: locations[%d].heading = %v", ErrHeadingRange, index, *loc.Heading)
	}
	if loc.HeadingTolerance != nil && (*loc.HeadingTolerance < 0 || *loc.HeadingTolerance > 180) {
		return fmt.Errorf("%w: locations[%d].heading_tolerance = %v", ErrHeadingToleranceRange, index, *loc.HeadingTolerance)
	}
	if loc.Radius != nil && *loc.Radius < 0 {
		return fmt.Errorf("%w: locations[%d].radius = %v", ErrNegativeRadius, index, *loc.Radius)
	}
	return nil
}

// validateTraceShape enforces the shape-source rule shared by the two trace
// operations: exactly one of an explicit point list and an encoded polyline,
// and an explicit list needs at least two points.
func validateTraceShape(shape []TracePoint, encodedPolyline string) error {
	switch {
	case len(shape) > 0 && encodedPolyline != "":
		return fmt.Errorf("%w: supply either shape or encoded_polyline, not both", ErrShapeAmbiguous)
	case len(shape) == 0 && encodedPolyline == "":
		return fmt.Errorf("%w: shape and encoded_polyline are both empty", ErrShapeMissing)
	case encodedPolyline == "" && len(shape) < 2:
		return fmt.Errorf("%w: shape has %d point(s), need at least 2", ErrTooFewLocations, len(shape))
	}
	return nil
}

// Validate reports nil; a status check has no client-side constraints.
func (r *StatusRequest) Validate() error {
	return nil
}

// Validate checks location count, coordinate bounds and the heading,
// tolerance and radius ranges on every location.
func (r *RouteRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	for i, loc := range r.Locations {
		if err := checkLocationExtras(i, loc); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks location count and coordinate bounds. Heading, tolerance
// and radius are not range-checked here; see checkLocationExtras.
func (r *LocateRequest) Validate() error {
	return checkStruct(r)
}

// Validate checks the shape-source rule and coordinate bounds.
func (r *TraceRouteRequest) Validate() error {
	if err := validateTraceShape(r.Shape, r.EncodedPolyline); err != nil {
		return err
	}
	return checkStruct(r)
}

// Validate checks the shape-source rule, coordinate bounds and the filter
// action vocabulary.
func (r *TraceAttributesRequest) Validate() error {
	if err := validateTraceShape(r.Shape, r.EncodedPolyline); err != nil {
		return err
	}
	if r.Filters != nil {
		switch strings.ToLower(r.Filters.Action) {
		case "include", "exclude":
		default:
			return fmt.Errorf("%w: got %q", ErrFilterAction, r.Filters.Action)
		}
	}
	return checkStruct(r)
}
