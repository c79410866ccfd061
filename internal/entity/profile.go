package entity

import (
	"time"
)

// RiskTolerance is the user's declared appetite for volatility.
type RiskTolerance string

const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"
)

// Timeline is the user's investment horizon.
type Timeline string

const (
	TimelineShort  Timeline = "short"
	TimelineMedium Timeline = "medium"
	TimelineLong   Timeline = "long"
)

// Default profile values applied when nothing has been saved yet or the
// stored value cannot be decoded.
const DefaultBudget int64 = 100000

// UserProfile captures the investment preferences driving recommendations.
// The zero user ID ("local") is used by the single-user terminal client.
type UserProfile struct {
	UserID        string        `gorm:"primaryKey;size:64" json:"-"`
	Budget        int64         `gorm:"not null" json:"budget"`
	RiskTolerance RiskTolerance `gorm:"size:16;not null" json:"risk_tolerance"`
	Timeline      Timeline      `gorm:"size:16;not null" json:"timeline"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"-"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"-"`
}

// TableName specifies the table name for the UserProfile model.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// DefaultProfile returns the profile used before the user saves one.
func DefaultProfile() UserProfile {
	return UserProfile{
		UserID:        "local",
		Budget:        DefaultBudget,
		RiskTolerance: RiskToleranceMedium,
		Timeline:      TimelineMedium,
	}
}

// Valid reports whether the profile satisfies the model invariants:
// positive budget and enum fields restricted to their declared sets.
func (p UserProfile) Valid() bool {
	if p.Budget <= 0 {
		return false
	}
	switch p.RiskTolerance {
	case RiskToleranceLow, RiskToleranceMedium, RiskToleranceHigh:
	default:
		return false
	}
	switch p.Timeline {
	case TimelineShort, TimelineMedium, TimelineLong:
	default:
		return false
	}
	return true
}

// Normalized returns a copy with any invalid field replaced by its default,
// so a partially valid submission degrades instead of failing.
func (p UserProfile) Normalized() UserProfile {
	def := DefaultProfile()
	if p.UserID == "" {
		p.UserID = def.UserID
	}
	if p.Budget <= 0 {
		p.Budget = def.Budget
	}
	switch p.RiskTolerance {
	case RiskToleranceLow, RiskToleranceMedium, RiskToleranceHigh:
	default:
		p.RiskTolerance = def.RiskTolerance
	}
	switch p.Timeline {
	case TimelineShort, TimelineMedium, TimelineLong:
	default:
		p.Timeline = def.Timeline
	}
	return p
}
