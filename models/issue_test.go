package models

import (
	"testing"
	"time"
)

func TestCategoryValidation(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Fatalf("category %q should be valid", c)
		}
	}
	for _, c := range []IssueCategory{"", "Potholes", "road", "Water"} {
		if c.Valid() {
			t.Fatalf("category %q should be invalid", c)
		}
	}
}

func TestIssuePriority(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	age := func(days int) time.Time { return now.AddDate(0, 0, -days) }

	cases := []struct {
		category IssueCategory
		daysOld  int
		want     string
	}{
		{CategoryWaterSupply, 10, "Critical"},
		{CategoryWaterSupply, 5, "High"},
		{CategoryElectricity, 1, "Medium"},
		{CategoryRoad, 20, "High"},
		{CategoryGarbage, 10, "Medium"},
		{CategoryOther, 2, "Low"},
	}
	for _, tc := range cases {
		issue := Issue{Category: tc.category, CreatedAt: age(tc.daysOld)}
		if got := issue.Priority(now); got != tc.want {
			t.Fatalf("%s %dd: got %q want %q", tc.category, tc.daysOld, got, tc.want)
		}
	}
}
