package services

import (
	"moveline/internal/core/domain/model/vehicle"
	"moveline/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrDistanceIsNegative is returned when pricing a trip with a negative distance.
	ErrDistanceIsNegative = errs.NewValueIsInvalidError("trip distance")
	// ErrWorkerCountIsNegative is returned when pricing with a negative worker count.
	ErrWorkerCountIsNegative = errs.NewValueIsInvalidError("worker count")
)

// workerFee is charged per assigned worker.
var workerFee = decimal.NewFromFloat(5.0)

// addOnFee is charged once per enabled add-on (assembly, disassembly).
var addOnFee = decimal.NewFromFloat(10.0)

// Pricing computes order quotes.
//
// The quote is the per-kilometer rate of the vehicle class times the trip
// distance rounded to two decimal places, plus a flat fee per worker and per
// enabled add-on.
type Pricing struct{}

// NewPricing creates a Pricing service.
func NewPricing() Pricing {
	return Pricing{}
}

// Quote prices a trip.
//
// The distance component is tripKm times the class rate, rounded half away
// from zero to two decimal places. Every quote needs a class rate: a nil
// class fails with vehicle.ErrUnknownClass.
func (p Pricing) Quote(
	tripKm float64,
	class *vehicle.Class,
	workerCount int,
	assembly, disassembly bool,
) (decimal.Decimal, error) {
	if tripKm < 0 {
		return decimal.Decimal{}, ErrDistanceIsNegative
	}
	if workerCount < 0 {
		return decimal.Decimal{}, ErrWorkerCountIsNegative
	}
	if class == nil {
		return decimal.Decimal{}, vehicle.ErrUnknownClass
	}

	rate, err := class.PerKmRate()
	if err != nil {
		return decimal.Decimal{}, err
	}
	total := decimal.NewFromFloat(tripKm).Mul(rate).Round(2)

	total = total.Add(workerFee.Mul(decimal.NewFromInt(int64(workerCount))))
	if assembly {
		total = total.Add(addOnFee)
	}
	if disassembly {
		total = total.Add(addOnFee)
	}

	return total, nil
}
