package entities

import "time"

// TaskStatus is the free-form progress marker of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Task represents a task owned by exactly one user
type Task struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`            // UUID
	UserID      string     `gorm:"not null;index;type:varchar(36)" json:"user_id"` // Owner, set once at creation
	Title       string     `gorm:"not null;size:255" json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `gorm:"not null;size:20" json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
