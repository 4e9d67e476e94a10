// Package models defines the wire-level data types shared by the API client,
// the session manager, and the UI.
package models

// User is an authenticated account as the backend returns it.
// A session either has no user at all or a fully populated one
// (id, email, name and age at minimum).
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Bio            string `json:"bio,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// SignupData is the payload for account creation.
type SignupData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Bio      string `json:"bio,omitempty"`
}

// ProfileUpdate is the payload for PUT /users/{id}. Identity fields (id,
// email) are never part of it; the server keeps them as they are.
type ProfileUpdate struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Bio            string `json:"bio,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}
