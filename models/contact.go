package models

import "time"

// ContactType is what the visitor is reaching out about.
type ContactType string

const (
	ContactGeneral       ContactType = "general"
	ContactProject       ContactType = "project"
	ContactCollaboration ContactType = "collaboration"
	ContactHiring        ContactType = "hiring"
)

// ContactTypes lists every valid contact type.
var ContactTypes = []ContactType{ContactGeneral, ContactProject, ContactCollaboration, ContactHiring}

// Valid reports whether t belongs to the closed set.
func (t ContactType) Valid() bool {
	for _, v := range ContactTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ContactMessage is an acknowledged contact form submission. It is never delivered anywhere.
type ContactMessage struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Subject   string      `json:"subject"`
	Message   string      `json:"message"`
	Type      ContactType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}
