package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// UserProfile is the profile returned by the auth endpoint.
// Raw keeps the full payload so it can be persisted verbatim.
type UserProfile struct {
	ID        int             `json:"id,omitempty"`
	Username  string          `json:"username,omitempty"`
	Email     string          `json:"email,omitempty"`
	FirstName string          `json:"firstName,omitempty"`
	LastName  string          `json:"lastName,omitempty"`
	Gender    string          `json:"gender,omitempty"`
	Image     string          `json:"image,omitempty"`
	Raw       json.RawMessage `json:"-"`
}

// ParseUserProfile decodes a login payload into a profile. Fields of an
// unexpected type are left empty rather than failing the whole payload.
func ParseUserProfile(payload []byte) (*UserProfile, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("profile payload is null")
	}

	p := &UserProfile{
		Username:  stringField(fields, "username"),
		Email:     stringField(fields, "email"),
		FirstName: stringField(fields, "firstName"),
		LastName:  stringField(fields, "lastName"),
		Gender:    stringField(fields, "gender"),
		Image:     stringField(fields, "image"),
		Raw:       append(json.RawMessage(nil), payload...),
	}
	if id, ok := fields["id"].(float64); ok {
		p.ID = int(id)
	}
	return p, nil
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// DisplayName returns the first name, or "Traveler" when unknown
func (u *UserProfile) DisplayName() string {
	if u == nil || strings.TrimSpace(u.FirstName) == "" {
		return "Traveler"
	}
	return u.FirstName
}

// FullName joins first and last name
func (u *UserProfile) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Clone returns a copy that does not share the raw payload
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	c.Raw = append(json.RawMessage(nil), u.Raw...)
	return &c
}
