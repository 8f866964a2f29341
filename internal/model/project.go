package model

import "time"

// Project owns a kanban board, milestones and a message thread.
type Project struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	TeamID      *string    `json:"team_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedBy   string     `json:"created_by"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	DeletedAt   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Archived reports whether the project is read-only.
func (p *Project) Archived() bool { return p.ArchivedAt != nil }

// ProjectTemplate describes a board layout that new projects can be created from.
// A nil ClientID marks a global template visible to every client.
type ProjectTemplate struct {
	ID          string              `json:"id"`
	ClientID    *string             `json:"client_id,omitempty"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Columns     []TemplateColumn    `json:"columns"`
	Milestones  []TemplateMilestone `json:"milestones"`
	CreatedAt   time.Time           `json:"created_at"`
}

type TemplateColumn struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	WIPLimit *int   `json:"wip_limit,omitempty"`
	IsDone   bool   `json:"is_done"`
}

type TemplateMilestone struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueInDays   *int   `json:"due_in_days,omitempty"`
}

// Column is one kanban column. Positions of a project's columns are 0..n-1.
type Column struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Position  int       `json:"position"`
	WIPLimit  *int      `json:"wip_limit,omitempty"`
	IsDone    bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tasks     []Task    `json:"tasks,omitempty"`
}

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a card on the board. Live tasks (not archived, not deleted) of a
// column have positions 0..n-1. ColumnID is empty once its column is removed.
type Task struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	ProjectID   string     `json:"project_id"`
	ColumnID    string     `json:"column_id"`
	MilestoneID *string    `json:"milestone_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Position    int        `json:"position"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	DeletedAt   *time.Time `json:"-"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Live reports whether the task occupies a slot on the board.
func (t *Task) Live() bool { return t.ArchivedAt == nil && t.DeletedAt == nil }

// Milestone aggregates progress over the live tasks assigned to it.
type Milestone struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"client_id"`
	ProjectID      string     `json:"project_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	TotalTasks     int        `json:"total_tasks"`
	CompletedTasks int        `json:"completed_tasks"`
	Progress       int        `json:"progress"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Attachment is a file stored in object storage and linked to a task.
type Attachment struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	TaskID      string    `json:"task_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	URL         string    `json:"url,omitempty"`
}

// Message is a post in a project's discussion thread.
type Message struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	ProjectID string     `json:"project_id"`
	AuthorID  string     `json:"author_id"`
	ParentID  *string    `json:"parent_id,omitempty"`
	Body      string     `json:"body"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
