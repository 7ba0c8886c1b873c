package dataset

import (
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"
)

// Kind is the inferred storage kind of a column.
type Kind string

const (
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindBoolean Kind = "boolean"
	KindText    Kind = "text"
)

// Numeric reports whether values of this kind can feed statistics and plots.
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

func (k Kind) seriesType() series.Type {
	switch k {
	case KindInteger:
		return series.Int
	case KindFloat:
		return series.Float
	case KindBoolean:
		return series.Bool
	default:
		return series.String
	}
}

// inferKind picks the narrowest kind that accepts every present value.
// Columns with no present values are float, matching an all-NaN column.
func inferKind(values []string, missing []bool) Kind {
	seen := 0
	isInt, isFloat, isBool := true, true, true
	for i, v := range values {
		if missing[i] {
			continue
		}
		seen++
		if isInt {
			if _, err := strconv.Atoi(v); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			switch strings.ToLower(v) {
			case "true", "false":
			default:
				isBool = false
			}
		}
		if !isInt && !isFloat && !isBool {
			return KindText
		}
	}
	switch {
	case seen == 0:
		return KindFloat
	case isInt:
		return KindInteger
	case isFloat:
		return KindFloat
	case isBool:
		return KindBoolean
	}
	return KindText
}
