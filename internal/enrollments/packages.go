package enrollments

import (
	"github.com/prelaunchhq/enrollment-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// PackageDefaults holds the figures a package tier seeds onto a new enrollment.
type PackageDefaults struct {
	FastStartBonus decimal.Decimal
	PersonalVolume decimal.Decimal
}

var packageDefaults = map[enums.PackageTier]PackageDefaults{
	enums.PackageTierEntry: {
		FastStartBonus: decimal.NewFromInt(50),
		PersonalVolume: decimal.NewFromInt(100),
	},
	enums.PackageTierElite: {
		FastStartBonus: decimal.NewFromInt(100),
		PersonalVolume: decimal.NewFromInt(200),
	},
	enums.PackageTierPro: {
		FastStartBonus: decimal.NewFromInt(200),
		PersonalVolume: decimal.NewFromInt(400),
	},
}

// DefaultsForPackage returns the seeded figures for a valid package tier.
func DefaultsForPackage(tier enums.PackageTier) (PackageDefaults, bool) {
	d, ok := packageDefaults[tier]
	return d, ok
}
