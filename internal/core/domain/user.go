package domain

import (
	"strings"
	"time"
)

// Role is the closed set of roles an authenticated user can hold.
type Role string

const (
	RoleManager    Role = "manager"
	RoleTeamLeader Role = "team_leader"
	RoleEmployee   Role = "employee"
	RoleClient     Role = "client"
)

// ParseRole normalizes a role string case-insensitively against the closed
// enum. Unknown values yield ErrInvalidRole before any write happens.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleManager:
		return RoleManager, nil
	case RoleTeamLeader:
		return RoleTeamLeader, nil
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleClient:
		return RoleClient, nil
	}
	return "", ErrInvalidRole
}

// User models an authenticated actor. ExternalID is the identity provider's
// subject; the record is created lazily on first authenticated contact.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	ExternalID   string    `json:"external_id" bson:"external_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	Image        string    `json:"image,omitempty" bson:"image,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Team groups employees under a leader. The leader is the only actor allowed
// to update progress on the team's tasks.
type Team struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	LeaderID  string    `json:"leader_id" bson:"leader_id"`
	MemberIDs []string  `json:"member_ids" bson:"member_ids"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
