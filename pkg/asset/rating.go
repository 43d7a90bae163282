package asset

import "github.com/tidwall/gjson"

// RatingKind tags the three shapes a vendor rating field shows up in:
// an object wrapping the 0-10 score, a bare scalar, or nothing at all.
type RatingKind int

const (
	RatingAbsent RatingKind = iota
	RatingScalar
	RatingWrapped
)

// Rating is the explicit resolution of the vendor's ambiguous rating
// fields, instead of optional-chaining through whatever shape arrives.
type Rating struct {
	Kind  RatingKind
	Value float64
}

// ParseRating classifies one raw rating field.
func ParseRating(res gjson.Result) Rating {
	switch {
	case res.IsObject():
		v := res.Get("value")
		if v.Type != gjson.Number {
			return Rating{Kind: RatingWrapped}
		}
		return Rating{Kind: RatingWrapped, Value: v.Float()}
	case res.Type == gjson.Number:
		return Rating{Kind: RatingScalar, Value: res.Float()}
	default:
		return Rating{Kind: RatingAbsent}
	}
}

// Score returns the normalized scalar for a rating. Only the wrapped form
// carries a score: a bare scalar resolves to 0, same as absent. That makes
// re-normalizing an already-normalized record collapse every rank to 0,
// which is the documented contract, so never feed normalized output back
// through Normalize.
func (r Rating) Score() float64 {
	if r.Kind == RatingWrapped {
		return r.Value
	}
	return 0
}
