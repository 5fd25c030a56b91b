package internal

import "time"

// RecordType is the closed set of loggable activities.
type RecordType string

const (
	TypeSleep      RecordType = "sleep"
	TypeFood       RecordType = "food"
	TypeMedication RecordType = "medication"
)

// IsValid reports whether t is one of the recognized record types.
func (t RecordType) IsValid() bool {
	switch t {
	case TypeSleep, TypeFood, TypeMedication:
		return true
	}
	return false
}

// IsInterval reports whether records of this type carry an end time and a
// duration. Only sleep does; food and medication are point-in-time events.
func (t RecordType) IsInterval() bool {
	return t == TypeSleep
}

// Label returns the display name used on exports.
func (t RecordType) Label() string {
	switch t {
	case TypeSleep:
		return "Sleep"
	case TypeFood:
		return "Food"
	case TypeMedication:
		return "Medicine"
	}
	return "Unknown"
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Record struct {
	ID        string     `json:"id"`
	Type      RecordType `json:"type"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  *int       `json:"duration,omitempty"` // minutes
	Memo      string     `json:"memo,omitempty"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
