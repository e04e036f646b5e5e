package domain

import "github.com/shopspring/decimal"

// Measure is a derived numeric that may be undefined when its base is zero.
// A percentage change against a zero base is not 0%, it has no value; the
// two states must stay distinguishable all the way to the consumer.
type Measure struct {
	Defined bool            `json:"defined"`
	Value   decimal.Decimal `json:"value"`
}

// DefinedMeasure wraps a concrete value.
func DefinedMeasure(v decimal.Decimal) Measure {
	return Measure{Defined: true, Value: v}
}

// UndefinedMeasure is the explicit "no value" marker.
func UndefinedMeasure() Measure {
	return Measure{}
}

// PercentChange computes ((new - old) / |old|) * 100, undefined when old is zero.
func PercentChange(old, new decimal.Decimal) Measure {
	if old.IsZero() {
		return UndefinedMeasure()
	}
	return DefinedMeasure(new.Sub(old).Div(old.Abs()).Mul(decimal.NewFromInt(100)))
}

// PercentOf computes (part / whole) * 100, undefined when whole is zero.
func PercentOf(part, whole decimal.Decimal) Measure {
	if whole.IsZero() {
		return UndefinedMeasure()
	}
	return DefinedMeasure(part.Div(whole).Mul(decimal.NewFromInt(100)))
}

// Ratio computes part / whole, undefined when whole is zero.
func Ratio(part, whole decimal.Decimal) Measure {
	if whole.IsZero() {
		return UndefinedMeasure()
	}
	return DefinedMeasure(part.Div(whole))
}
