package models

import "time"

// Stack is a named collection of cards owned by one user. Public stacks are
// browsable by everyone; private ones only by the owner and collaborators.
type Stack struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	UserID        string         `json:"user_id"`
	OwnerName     string         `json:"owner_name,omitempty"`
	IsPublic      bool           `json:"is_public"`
	CardAmount    int            `json:"card_amount"`
	Collaborators []Collaborator `json:"collaborators,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Collaborator grants a user read access to a stack, and write access when
// CanEdit is set. Collaborators never gain the right to submit reviews;
// mastery state belongs to the owner alone.
type Collaborator struct {
	ID       string `json:"id"`
	StackID  string `json:"stack_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	CanEdit  bool   `json:"can_edit"`
}
