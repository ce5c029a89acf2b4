package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Price struct {
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency" json:"currency"`
	Period   string  `bson:"period" json:"period"` // e.g. "month"
}

type OfferDescription struct {
	Synopsis string   `bson:"synopsis" json:"synopsis"`
	Features []string `bson:"features,omitempty" json:"features,omitempty"`
}

// GymPassOffer is a pass that can be bought.
type GymPassOffer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"` // unique
	Subheader    string             `bson:"subheader,omitempty" json:"subheader,omitempty"`
	Price        Price              `bson:"price" json:"price"`
	Description  OfferDescription   `bson:"description" json:"description"`
	Premium      bool               `bson:"premium" json:"premium"`
	ValidityDays int                `bson:"validityDays" json:"validityDays"`
	Entries      int                `bson:"entries" json:"entries"` // 0 means unlimited
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OfferSnapshot freezes the offer terms on a purchase.
type OfferSnapshot struct {
	ID    primitive.ObjectID `bson:"id" json:"id"`
	Title string             `bson:"title" json:"title"`
	Price Price              `bson:"price" json:"price"`
}

// PurchasedGymPass is a user's instance of an offer.
type PurchasedGymPass struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Offer            OfferSnapshot      `bson:"offer" json:"offer"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	PurchaseDateTime time.Time          `bson:"purchaseDateTime" json:"purchaseDateTime"`
	StartDate        time.Time          `bson:"startDate" json:"startDate"`
	EndDate          time.Time          `bson:"endDate" json:"endDate"`
	Entries          int                `bson:"entries" json:"entries"`
	Unlimited        bool               `bson:"unlimited" json:"unlimited"`
	SuspensionDate   *time.Time         `bson:"suspensionDate,omitempty" json:"suspensionDate,omitempty"`
}

// IsSuspended reports whether a suspension is still running on day.
func (p *PurchasedGymPass) IsSuspended(day time.Time) bool {
	return p.SuspensionDate != nil && !p.SuspensionDate.Before(Day(day))
}

// IsExpired reports whether the validity window ended before day.
func (p *PurchasedGymPass) IsExpired(day time.Time) bool {
	return p.EndDate.Before(Day(day))
}

// IsValid reports whether the pass lets its owner in on day.
func (p *PurchasedGymPass) IsValid(day time.Time) bool {
	d := Day(day)
	if d.Before(p.StartDate) || p.IsExpired(d) || p.IsSuspended(d) {
		return false
	}
	return p.Unlimited || p.Entries > 0
}
