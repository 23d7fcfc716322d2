// Package portfolio contains the EduFolio dashboard data types and the
// services that persist them through the session store. All access is
// scoped to the signed-in identity; nothing here touches storage keys
// directly.
package portfolio

import "errors"

// Role selects which dashboard a user sees.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// AchievementStatus tracks the faculty approval workflow.
type AchievementStatus string

const (
	StatusPending  AchievementStatus = "pending"
	StatusApproved AchievementStatus = "approved"
	StatusRejected AchievementStatus = "rejected"
)

var (
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidStatus       = errors.New("invalid achievement status")
	ErrAchievementNotFound = errors.New("achievement not found")
)

// Profile is the user-editable profile form.
type Profile struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
	Bio        string `json:"bio"`
}

// Achievement is one tracked activity or award.
type Achievement struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Category  string            `json:"category"`
	AwardedOn string            `json:"awardedOn"`
	Status    AchievementStatus `json:"status"`
}

// Settings holds the dashboard toggles.
type Settings struct {
	EmailNotifications bool   `json:"emailNotifications"`
	Theme              string `json:"theme"`
}

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

func validStatus(s AchievementStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
