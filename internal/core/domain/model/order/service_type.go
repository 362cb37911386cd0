package order

import (
	"fmt"

	"moveline/internal/pkg/errs"
)

// ServiceType is the kind of job a customer orders.
type ServiceType string

const (
	// ServiceMoving is a household or office move.
	ServiceMoving ServiceType = "moving"
	// ServiceCleaning is a cleaning job.
	ServiceCleaning ServiceType = "cleaning"
	// ServiceScrapRemoval is a scrap removal job.
	ServiceScrapRemoval ServiceType = "scrap"
)

func validServiceTypes() map[ServiceType]struct{} {
	return map[ServiceType]struct{}{
		ServiceMoving:       {},
		ServiceCleaning:     {},
		ServiceScrapRemoval: {},
	}
}

// ParseServiceType converts a string to a ServiceType.
func ParseServiceType(s string) (ServiceType, error) {
	st := ServiceType(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate checks that the service type is one of the known kinds.
func (s ServiceType) Validate() error {
	if _, ok := validServiceTypes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"service type", fmt.Errorf("%q is not a known service type", string(s)))
	}
	return nil
}

// String implements fmt.Stringer.
func (s ServiceType) String() string {
	return string(s)
}
