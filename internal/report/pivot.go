// Package report reshapes flat report rows into the period-keyed series the
// dashboard charts consume. It is pure: no I/O, inputs are never mutated.
package report

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Row is a flat report row, as decoded from a JSON array of objects.
type Row map[string]any

// Series is one period bucket. Values holds the summed amount per key.
type Series struct {
	Period string
	Values map[string]decimal.Decimal
}

// MarshalJSON flattens the bucket into {"period": ..., key: value, ...},
// the shape chart libraries expect.
func (s Series) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Values)+1)
	out["period"] = s.Period
	for k, v := range s.Values {
		out[k] = v
	}
	return json.Marshal(out)
}

// PivotByPeriodAndKey buckets rows by periodField and accumulates valueField
// into the slot named by keyField, summing when a (period, key) pair repeats.
// Missing or malformed values count as zero. Buckets appear in input order
// of first occurrence; the sums are order-independent.
func PivotByPeriodAndKey(rows []Row, periodField, keyField, valueField string) []Series {
	buckets := make(map[string]int, len(rows))
	var out []Series

	for _, row := range rows {
		period := asString(row[periodField])
		key := asString(row[keyField])
		value := asDecimal(row[valueField])

		idx, ok := buckets[period]
		if !ok {
			idx = len(out)
			buckets[period] = idx
			out = append(out, Series{Period: period, Values: make(map[string]decimal.Decimal)})
		}
		out[idx].Values[key] = out[idx].Values[key].Add(value)
	}

	return out
}

// PivotByPeriodAndKeySorted is the time-series variant: same accumulation,
// output ordered lexicographically by period.
func PivotByPeriodAndKeySorted(rows []Row, periodField, keyField, valueField string) []Series {
	out := PivotByPeriodAndKey(rows, periodField, keyField, valueField)
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asDecimal parses the common JSON value shapes; anything unparseable is
// treated as zero rather than failing the whole transform.
func asDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case decimal.Decimal:
		return x
	default:
		return decimal.Zero
	}
}
