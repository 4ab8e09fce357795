package enums

import "fmt"

// EnrollmentStatus is the lifecycle state of an enrollment record. The set is
// flat: any status may be set to any other by an authorized caller, there is
// no enforced transition graph.
type EnrollmentStatus string

const (
	EnrollmentStatusPending    EnrollmentStatus = "Pending"
	EnrollmentStatusActive     EnrollmentStatus = "Active"
	EnrollmentStatusSuspended  EnrollmentStatus = "Suspended"
	EnrollmentStatusTerminated EnrollmentStatus = "Terminated"
)

var validEnrollmentStatuses = []EnrollmentStatus{
	EnrollmentStatusPending,
	EnrollmentStatusActive,
	EnrollmentStatusSuspended,
	EnrollmentStatusTerminated,
}

// String implements fmt.Stringer.
func (s EnrollmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known EnrollmentStatus.
func (s EnrollmentStatus) IsValid() bool {
	for _, candidate := range validEnrollmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseEnrollmentStatus converts raw input into an EnrollmentStatus.
func ParseEnrollmentStatus(value string) (EnrollmentStatus, error) {
	for _, candidate := range validEnrollmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid enrollment status %q", value)
}

// CanLogin reports whether a member in this status may authenticate.
func (s EnrollmentStatus) CanLogin() bool {
	return s != EnrollmentStatusSuspended && s != EnrollmentStatusTerminated
}
