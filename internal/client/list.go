package client

import (
	"strings"

	"github.com/umalmyha/contacts/internal/model"
)

// ContactList is client side copy of contacts patched after every confirmed change
type ContactList struct {
	contacts []model.Contact
}

// NewContactList builds ContactList from fetched contacts
func NewContactList(contacts []model.Contact) *ContactList {
	l := &ContactList{contacts: make([]model.Contact, len(contacts))}
	copy(l.contacts, contacts)
	return l
}

// All returns copy of all contacts
func (l *ContactList) All() []model.Contact {
	all := make([]model.Contact, len(l.contacts))
	copy(all, l.contacts)
	return all
}

// Len returns number of contacts
func (l *ContactList) Len() int {
	return len(l.contacts)
}

// Append adds created contact to the end of list
func (l *ContactList) Append(c model.Contact) {
	l.contacts = append(l.contacts, c)
}

// Replace swaps contact with same id, reports false if it is absent
func (l *ContactList) Replace(c model.Contact) bool {
	for i := range l.contacts {
		if l.contacts[i].ID == c.ID {
			l.contacts[i] = c
			return true
		}
	}
	return false
}

// Remove drops contact with provided id, reports false if it is absent
func (l *ContactList) Remove(id string) bool {
	for i := range l.contacts {
		if l.contacts[i].ID == id {
			l.contacts = append(l.contacts[:i], l.contacts[i+1:]...)
			return true
		}
	}
	return false
}

// Filter returns contacts whose first name, last name or email contains query ignoring case.
// Empty query matches everything.
func (l *ContactList) Filter(query string) []model.Contact {
	q := strings.ToLower(query)

	found := make([]model.Contact, 0, len(l.contacts))
	for _, c := range l.contacts {
		if strings.Contains(strings.ToLower(c.FirstName), q) ||
			strings.Contains(strings.ToLower(c.LastName), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			found = append(found, c)
		}
	}
	return found
}
