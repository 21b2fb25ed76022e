package models

import (
	"sort"
	"testing"
)

func TestMembershipName(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{MembershipBasic, "basic"},
		{MembershipStandard, "standard"},
		{MembershipProfessional, "professional"},
		{MembershipEnterprise, "enterprise"},
		{0, "unknown"},
		{99, "unknown"},
	}
	for _, tt := range tests {
		if got := MembershipName(tt.level); got != tt.want {
			t.Errorf("MembershipName(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestValidMembership(t *testing.T) {
	for level := MembershipBasic; level <= MembershipEnterprise; level++ {
		if !ValidMembership(level) {
			t.Errorf("Level %d should be valid", level)
		}
	}
	if ValidMembership(0) || ValidMembership(5) {
		t.Error("Out-of-range levels should be invalid")
	}
}

func TestCanAccessReport(t *testing.T) {
	tests := []struct {
		report string
		level  int
		want   bool
	}{
		{"inventory-by-warehouse", MembershipBasic, true},
		{"low-stock", MembershipBasic, false},
		{"low-stock", MembershipStandard, true},
		{"movement-summary", MembershipStandard, true},
		{"transaction-history", MembershipStandard, false},
		{"transaction-history", MembershipProfessional, true},
		{"valuation", MembershipProfessional, false},
		{"valuation", MembershipEnterprise, true},
		{"no-such-report", MembershipEnterprise, false},
	}
	for _, tt := range tests {
		if got := CanAccessReport(tt.report, tt.level); got != tt.want {
			t.Errorf("CanAccessReport(%q, %d) = %v, want %v", tt.report, tt.level, got, tt.want)
		}
	}
}

func TestReportNames(t *testing.T) {
	basic := ReportNames(MembershipBasic)
	if len(basic) != 1 || basic[0] != "inventory-by-warehouse" {
		t.Errorf("Basic tier reports = %v", basic)
	}

	all := ReportNames(MembershipEnterprise)
	sort.Strings(all)
	want := []string{"inventory-by-warehouse", "low-stock", "movement-summary", "transaction-history", "valuation"}
	if len(all) != len(want) {
		t.Fatalf("Enterprise tier reports = %v", all)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("Enterprise report %d = %q, want %q", i, all[i], want[i])
		}
	}
}
