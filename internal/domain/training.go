package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IndividualTraining is a one-on-one session a user requests from a trainer.
type IndividualTraining struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID     primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	ParticipantID primitive.ObjectID `bson:"participantId" json:"participantId"`
	Title         string             `bson:"title" json:"title"`
	StartTime     time.Time          `bson:"startTime" json:"startTime"`
	EndTime       time.Time          `bson:"endTime" json:"endTime"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	Remarks       string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Accepted      bool               `bson:"accepted" json:"accepted"`
	Cancelled     bool               `bson:"cancelled" json:"cancelled"`
	Rejected      bool               `bson:"rejected" json:"rejected"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the training still blocks the trainer's calendar.
func (t *IndividualTraining) IsActive() bool {
	return !t.Cancelled && !t.Rejected
}

// Overlaps reports whether [start, end) intersects the training.
func (t *IndividualTraining) Overlaps(start, end time.Time) bool {
	return t.StartTime.Before(end) && start.Before(t.EndTime)
}
