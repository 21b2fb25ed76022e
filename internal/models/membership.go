package models

// Membership tier ordinals. The ordinal is stored on Customer and gates
// report access via a static lookup table.
const (
	MembershipBasic        = 1
	MembershipStandard     = 2
	MembershipProfessional = 3
	MembershipEnterprise   = 4
)

var membershipNames = map[int]string{
	MembershipBasic:        "basic",
	MembershipStandard:     "standard",
	MembershipProfessional: "professional",
	MembershipEnterprise:   "enterprise",
}

// reportTiers maps a report name to the minimum membership level that may
// request it.
var reportTiers = map[string]int{
	"inventory-by-warehouse": MembershipBasic,
	"low-stock":              MembershipStandard,
	"movement-summary":       MembershipStandard,
	"transaction-history":    MembershipProfessional,
	"valuation":              MembershipEnterprise,
}

// MembershipName returns the display name for a tier ordinal, or "unknown".
func MembershipName(level int) string {
	if name, ok := membershipNames[level]; ok {
		return name
	}
	return "unknown"
}

// ValidMembership reports whether level is a known tier ordinal.
func ValidMembership(level int) bool {
	_, ok := membershipNames[level]
	return ok
}

// CanAccessReport checks the static tier table. Unknown reports are denied.
func CanAccessReport(report string, level int) bool {
	min, ok := reportTiers[report]
	if !ok {
		return false
	}
	return level >= min
}

// ReportNames lists the reports the given membership level may access.
func ReportNames(level int) []string {
	names := make([]string, 0, len(reportTiers))
	for name, min := range reportTiers {
		if level >= min {
			names = append(names, name)
		}
	}
	return names
}
