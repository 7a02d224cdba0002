package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Roles known to the portal.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// ValidRole reports whether r is one of the three portal roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleTeacher || r == RoleStudent
}

// Principal is the tagged union over the three account tables. Everything
// that needs "a user" works against this instead of querying admins,
// teachers and students through three near-identical code paths.
type Principal struct {
	Role  string `json:"role"`
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	passwordHash string
}

// PasswordHash exposes the stored hash to the auth handler without
// serializing it anywhere.
func (p *Principal) PasswordHash() string { return p.passwordHash }

// FindPrincipal resolves a user by (role, id).
func FindPrincipal(db *gorm.DB, role string, id uint) (*Principal, error) {
	switch role {
	case RoleAdmin:
		var a Admin
		if err := db.First(&a, id).Error; err != nil {
			return nil, err
		}
		return &Principal{Role: role, ID: a.ID, Name: a.Name, Email: a.Email, passwordHash: a.Password}, nil
	case RoleTeacher:
		var t Teacher
		if err := db.First(&t, id).Error; err != nil {
			return nil, err
		}
		return &Principal{Role: role, ID: t.ID, Name: t.Name, Email: t.Email, passwordHash: t.Password}, nil
	case RoleStudent:
		var s Student
		if err := db.First(&s, id).Error; err != nil {
			return nil, err
		}
		return &Principal{Role: role, ID: s.ID, Name: s.Name, Email: s.Email, passwordHash: s.Password}, nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}

// FindPrincipalByEmail resolves a user by (role, email) for login.
func FindPrincipalByEmail(db *gorm.DB, role, email string) (*Principal, error) {
	switch role {
	case RoleAdmin:
		var a Admin
		if err := db.Where("email = ?", email).First(&a).Error; err != nil {
			return nil, err
		}
		return &Principal{Role: role, ID: a.ID, Name: a.Name, Email: a.Email, passwordHash: a.Password}, nil
	case RoleTeacher:
		var t Teacher
		if err := db.Where("email = ?", email).First(&t).Error; err != nil {
			return nil, err
		}
		return &Principal{Role: role, ID: t.ID, Name: t.Name, Email: t.Email, passwordHash: t.Password}, nil
	case RoleStudent:
		var s Student
		if err := db.Where("email = ?", email).First(&s).Error; err != nil {
			return nil, err
		}
		return &Principal{Role: role, ID: s.ID, Name: s.Name, Email: s.Email, passwordHash: s.Password}, nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}
