package services

import (
	"context"
	"sort"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/office"
)

// DistanceEstimator yields the road distance in kilometers between two points.
// Implementations report an error when the distance cannot be determined;
// the ranker treats any error as "office unreachable" and skips the office.
type DistanceEstimator interface {
	DistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error)
}

// RankedOffice is an office paired with its road distance to a pickup point.
type RankedOffice struct {
	Office     *office.Office
	DistanceKm float64
}

// OfficeRanker orders offices by road distance from an order's pickup point.
//
// Business rules:
//   - Offices whose distance cannot be estimated are skipped, not failed
//   - Remaining offices are sorted ascending by distance
//   - Ties keep the input order, so downstream selection stays deterministic
type OfficeRanker struct {
	estimator DistanceEstimator
}

// NewOfficeRanker creates an OfficeRanker backed by the given estimator.
func NewOfficeRanker(estimator DistanceEstimator) OfficeRanker {
	return OfficeRanker{estimator: estimator}
}

// Rank returns the given offices sorted by ascending road distance from pickup.
// The result may be shorter than the input when some offices are unreachable,
// and empty when none are.
func (r OfficeRanker) Rank(
	ctx context.Context,
	pickup kernel.GeoPoint,
	offices []*office.Office,
) ([]RankedOffice, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]RankedOffice, 0, len(offices))
	for _, o := range offices {
		if err := o.Validate(); err != nil {
			return nil, err
		}

		distance, err := r.estimator.DistanceKm(ctx, pickup, o.Location())
		if err != nil {
			continue
		}

		ranked = append(ranked, RankedOffice{Office: o, DistanceKm: distance})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked, nil
}
