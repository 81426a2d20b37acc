package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	CategoryRoad        IssueCategory = "Road"
	CategoryWaterSupply IssueCategory = "Water Supply"
	CategoryElectricity IssueCategory = "Electricity"
	CategoryGarbage     IssueCategory = "Garbage"
	CategoryOther       IssueCategory = "Other"
)

// Categories lists every valid issue category, in form order.
func Categories() []IssueCategory {
	return []IssueCategory{
		CategoryRoad,
		CategoryWaterSupply,
		CategoryElectricity,
		CategoryGarbage,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c IssueCategory) Valid() bool {
	switch c {
	case CategoryRoad, CategoryWaterSupply, CategoryElectricity, CategoryGarbage, CategoryOther:
		return true
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	StatusPending    IssueStatus = "pending"
	StatusInProgress IssueStatus = "in_progress"
	StatusResolved   IssueStatus = "resolved"
)

// Issue represents a civic problem reported by a citizen. The reporter is
// optional; anonymous reports are allowed. ResolvedAt and ResolvedBy are
// set exactly when Status is resolved, and resolved is terminal.
type Issue struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	Category    IssueCategory       `bson:"category" json:"category"`
	Latitude    *float64            `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64            `bson:"longitude,omitempty" json:"longitude,omitempty"`
	UserID      *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Status      IssueStatus         `bson:"status" json:"status"`
	AdminNotes  *string             `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	ResolvedAt  *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	ResolvedBy  *primitive.ObjectID `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
}

// Resolved reports whether the issue has reached its terminal state.
func (i *Issue) Resolved() bool {
	return i.Status == StatusResolved
}

// Priority derives an urgency label from the category and how long the
// issue has been open. Water and electricity outages escalate faster.
func (i *Issue) Priority(now time.Time) string {
	daysOpen := int(now.Sub(i.CreatedAt).Hours() / 24)

	switch i.Category {
	case CategoryWaterSupply, CategoryElectricity:
		switch {
		case daysOpen > 7:
			return "Critical"
		case daysOpen > 3:
			return "High"
		default:
			return "Medium"
		}
	default:
		switch {
		case daysOpen > 14:
			return "High"
		case daysOpen > 7:
			return "Medium"
		default:
			return "Low"
		}
	}
}
