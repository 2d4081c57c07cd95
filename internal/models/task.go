package models

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Task is owned by exactly one user. OwnerID is set on creation
// and never reassigned.
type Task struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	Priority    Priority
	Status      Status
}
