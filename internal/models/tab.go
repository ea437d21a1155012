package models

import (
	"errors"
	"fmt"
	"strings"
)

// Tab is one section of the report page.
type Tab int

const (
	TabOverview Tab = iota
	TabPlatforms
	TabInsights
	TabNextPeriodPlan
)

var ErrUnknownTab = errors.New("unknown tab")

var tabIDs = [...]string{
	TabOverview:       "overview",
	TabPlatforms:      "platforms",
	TabInsights:       "insights",
	TabNextPeriodPlan: "next-period-plan",
}

// Tabs returns every tab in display order.
func Tabs() []Tab {
	return []Tab{TabOverview, TabPlatforms, TabInsights, TabNextPeriodPlan}
}

func (t Tab) Valid() bool { return t >= TabOverview && t <= TabNextPeriodPlan }

func (t Tab) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tab(%d)", int(t))
	}
	return tabIDs[t]
}

// ParseTab accepts a tab id, case-insensitively. An empty string yields the default tab.
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TabOverview, nil
	}
	for i, id := range tabIDs {
		if id == s {
			return Tab(i), nil
		}
	}
	return TabOverview, fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

func (t Tab) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTab, int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tab) UnmarshalText(b []byte) error {
	v, err := ParseTab(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
