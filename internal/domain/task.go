package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AcceptStatus is the employee's answer to an assigned task.
type AcceptStatus string

const (
	AcceptNoAction    AcceptStatus = "NO_ACTION"
	AcceptAccepted    AcceptStatus = "ACCEPTED"
	AcceptNotAccepted AcceptStatus = "NOT_ACCEPTED"
)

const (
	MinMark = 1
	MaxMark = 5
)

type Report struct {
	Summary       string    `bson:"summary" json:"summary"`
	Date          time.Time `bson:"date" json:"date"`
	AttachmentKey string    `bson:"attachmentKey,omitempty" json:"attachmentKey,omitempty"`
}

type Evaluation struct {
	Mark    int       `bson:"mark" json:"mark"`
	Comment string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Date    time.Time `bson:"date" json:"date"`
}

// Task is a work item a manager assigns to an employee.
type Task struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Manager           UserRef            `bson:"manager" json:"manager"`
	Employee          UserRef            `bson:"employee" json:"employee"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	TaskCreationDate  time.Time          `bson:"taskCreationDate" json:"taskCreationDate"`
	DueDate           time.Time          `bson:"dueDate" json:"dueDate"`
	Reminder          *time.Time         `bson:"reminder,omitempty" json:"reminder,omitempty"`
	EmployeeAccept    AcceptStatus       `bson:"employeeAccept" json:"employeeAccept"`
	EmployeeComment   string             `bson:"employeeComment,omitempty" json:"employeeComment,omitempty"`
	Report            *Report            `bson:"report,omitempty" json:"report,omitempty"`
	ManagerEvaluation *Evaluation        `bson:"managerEvaluation,omitempty" json:"managerEvaluation,omitempty"`
	LastUpdated       time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}

func (t *Task) IsManagedBy(id primitive.ObjectID) bool {
	return t.Manager.ID == id
}

func (t *Task) IsAssignedTo(id primitive.ObjectID) bool {
	return t.Employee.ID == id
}
