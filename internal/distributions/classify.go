// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package distributions

import (
	"strings"
	"time"
)

// FieldType is a declared schema type the classifier asks about.
type FieldType string

// Schema types that make a field temporal.
const (
	FieldTypeDate     FieldType = "DateField"     // Calendar date without time of day
	FieldTypeDateTime FieldType = "DateTimeField" // Instant in time
)

// SchemaLookup answers whether a field has a declared type.
type SchemaLookup interface {
	MeetsType(path string, ftype FieldType) bool
}

// ValueKind is the bucket-labeling strategy for a field.
type ValueKind int

const (
	KindCategorical ValueKind = iota
	KindNumeric
	KindTemporal
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTemporal:
		return "temporal"
	default:
		return "categorical"
	}
}

// NumericKind selects how numeric edges are printed.
type NumericKind int

const (
	NumericFloat NumericKind = iota
	NumericInteger
)

// Classification is the result of classifying a field. Location is set only
// for temporal fields; Numeric is meaningful only for numeric fields.
type Classification struct {
	Kind     ValueKind
	Numeric  NumericKind
	Location *time.Location
}

// Temporal returns a temporal classification resolved in loc (UTC when nil).
func Temporal(loc *time.Location) Classification {
	if loc == nil {
		loc = time.UTC
	}
	return Classification{Kind: KindTemporal, Location: loc}
}

// Numeric returns a numeric classification of the given kind.
func Numeric(kind NumericKind) Classification {
	return Classification{Kind: KindNumeric, Numeric: kind}
}

// Categorical returns the fallback classification.
func Categorical() Classification {
	return Classification{Kind: KindCategorical}
}

// IsTemporal reports whether the field holds dates or date-times.
func (c Classification) IsTemporal() bool { return c.Kind == KindTemporal }

// IsNumeric reports whether the field holds numbers.
func (c Classification) IsNumeric() bool { return c.Kind == KindNumeric }

// String describes the classification for logs and debugging output.
func (c Classification) String() string {
	switch c.Kind {
	case KindTemporal:
		return "temporal(" + c.location().String() + ")"
	case KindNumeric:
		if c.Numeric == NumericInteger {
			return "numeric(integer)"
		}
		return "numeric(float)"
	default:
		return "categorical"
	}
}

func (c Classification) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Type tags reported by the backend for numeric fields.
var numericTypeTags = map[string]NumericKind{
	"intfield":         NumericInteger,
	"framenumberfield": NumericInteger,
	"int":              NumericInteger,
	"integer":          NumericInteger,
	"long":             NumericInteger,
	"short":            NumericInteger,
	"byte":             NumericInteger,
	"floatfield":       NumericFloat,
	"float":            NumericFloat,
	"double":           NumericFloat,
	"half_float":       NumericFloat,
	"scaled_float":     NumericFloat,
}

// NumericKindOf maps a distribution type tag to a numeric kind.
func NumericKindOf(typeTag string) (NumericKind, bool) {
	kind, ok := numericTypeTags[strings.ToLower(strings.TrimSpace(typeTag))]
	return kind, ok
}

// Classify decides how the buckets of d are labeled. Date-time fields are
// shown in displayTZ; date-only fields always resolve in UTC since they
// carry no time of day. The numeric kind comes from the distribution's own
// type tag. Anything unrecognized is categorical.
func Classify(d Distribution, schema SchemaLookup, displayTZ *time.Location) Classification {
	if schema != nil {
		if schema.MeetsType(d.Path, FieldTypeDate) {
			return Temporal(time.UTC)
		}
		if schema.MeetsType(d.Path, FieldTypeDateTime) {
			return Temporal(displayTZ)
		}
	}
	if kind, ok := NumericKindOf(d.Type); ok {
		return Numeric(kind)
	}
	return Categorical()
}
