package enums

import "fmt"

// PackageTier is the enrollment package purchased at sign-up.
type PackageTier string

const (
	PackageTierEntry PackageTier = "Entry Pack"
	PackageTierElite PackageTier = "Elite Pack"
	PackageTierPro   PackageTier = "Pro Pack"
)

var validPackageTiers = []PackageTier{
	PackageTierEntry,
	PackageTierElite,
	PackageTierPro,
}

// String implements fmt.Stringer.
func (p PackageTier) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PackageTier.
func (p PackageTier) IsValid() bool {
	for _, candidate := range validPackageTiers {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePackageTier converts raw input into a PackageTier.
func ParsePackageTier(value string) (PackageTier, error) {
	for _, candidate := range validPackageTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid package tier %q", value)
}
