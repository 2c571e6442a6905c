package render

import (
	"github.com/roach88/dicerules/internal/ir"
)

// View is the JSON document describing one evaluated roll.
type View struct {
	RollID     string             `json:"roll_id"`
	Seed       int64              `json:"seed"`
	Expression string             `json:"expression"`
	Digest     string             `json:"digest"`
	Result     ir.AggregateResult `json:"result"`
}

// NewView builds a View, computing the result digest.
func NewView(rollID string, seed int64, expression string, r ir.AggregateResult) (View, error) {
	digest, err := ir.Digest(r)
	if err != nil {
		return View{}, err
	}
	return View{
		RollID:     rollID,
		Seed:       seed,
		Expression: expression,
		Digest:     digest,
		Result:     r,
	}, nil
}
