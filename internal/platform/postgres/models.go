package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
)

type userRow struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	Password  string    `gorm:"column:password;not null"`
	Role      string    `gorm:"column:role;not null"`
	Status    string    `gorm:"column:status;not null"`
	Avatar    *string   `gorm:"column:avatar"`
	Phone     *string   `gorm:"column:phone"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRow) TableName() string { return "users" }

func newUserRow(u *domain.User) userRow {
	return userRow{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.HashedPassword,
		Role:      string(u.Role),
		Status:    string(u.Status),
		Avatar:    u.Avatar,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		HashedPassword: r.Password,
		Role:           domain.Role(r.Role),
		Status:         domain.UserStatus(r.Status),
		Avatar:         r.Avatar,
		Phone:          r.Phone,
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
}

type taskRow struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Title     string    `gorm:"column:title;not null"`
	Status    string    `gorm:"column:status;not null"`
	Priority  string    `gorm:"column:priority;not null"`
	Date      time.Time `gorm:"column:date;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (taskRow) TableName() string { return "tasks" }

func newTaskRow(t *domain.Task) taskRow {
	return taskRow{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Status:    string(t.Status),
		Priority:  string(t.Priority),
		Date:      t.Date,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (r taskRow) toDomain() domain.Task {
	return domain.Task{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Status:    domain.TaskStatus(r.Status),
		Priority:  domain.Priority(r.Priority),
		Date:      r.Date.UTC(),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// userAssignments converts the set fields of update into column assignments.
func userAssignments(update domain.UserUpdate, now time.Time) map[string]any {
	set := map[string]any{"updated_at": now}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = domain.NormalizeEmail(*update.Email)
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if update.HashedPassword != nil {
		set["password"] = *update.HashedPassword
	}
	if update.Role != nil {
		set["role"] = string(*update.Role)
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	return set
}

// taskAssignments converts the set fields of update into column assignments.
func taskAssignments(update domain.TaskUpdate, now time.Time) map[string]any {
	set := map[string]any{"updated_at": now}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.Priority != nil {
		set["priority"] = string(*update.Priority)
	}
	if update.Date != nil {
		set["date"] = update.Date.UTC()
	}
	return set
}
