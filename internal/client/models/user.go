package models

import "encoding/json"

// User is the cached profile of the signed-in user. The backend is the
// source of truth; the client only mirrors it.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar,omitempty"`
}

// UnmarshalJSON accepts both the _id and id key for the user identifier.
func (u *User) UnmarshalJSON(data []byte) error {
	var w struct {
		ID       string `json:"id"`
		LegacyID string `json:"_id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Avatar   string `json:"avatar"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	u.ID = firstNonEmpty(w.ID, w.LegacyID)
	u.Name = w.Name
	u.Email = w.Email
	u.Phone = w.Phone
	u.Avatar = w.Avatar
	return nil
}
