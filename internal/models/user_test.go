package models

import "testing"

func TestParseUserProfile(t *testing.T) {
	payload := []byte(`{"id": 1, "username": "emilys", "firstName": "Emily", "lastName": "Johnson", "accessToken": "abc"}`)

	p, err := ParseUserProfile(payload)
	if err != nil {
		t.Fatalf("ParseUserProfile() error = %v", err)
	}
	if p.ID != 1 || p.Username != "emilys" {
		t.Errorf("got id=%d username=%q", p.ID, p.Username)
	}
	if p.FullName() != "Emily Johnson" {
		t.Errorf("FullName() = %q", p.FullName())
	}
	if string(p.Raw) != string(payload) {
		t.Errorf("Raw = %s, want original payload", p.Raw)
	}
}

func TestParseUserProfile_TolerantOfFieldTypes(t *testing.T) {
	p, err := ParseUserProfile([]byte(`{"id": "u-1", "firstName": 42, "username": "x"}`))
	if err != nil {
		t.Fatalf("ParseUserProfile() error = %v", err)
	}
	if p.ID != 0 || p.FirstName != "" || p.Username != "x" {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestParseUserProfile_Invalid(t *testing.T) {
	for _, payload := range []string{`not json`, `null`, `[1,2]`} {
		if _, err := ParseUserProfile([]byte(payload)); err == nil {
			t.Errorf("ParseUserProfile(%s) should fail", payload)
		}
	}
}

func TestUserProfile_DisplayName(t *testing.T) {
	var nilUser *UserProfile
	if got := nilUser.DisplayName(); got != "Traveler" {
		t.Errorf("nil DisplayName() = %q", got)
	}
	u := &UserProfile{FirstName: "Emily"}
	if got := u.DisplayName(); got != "Emily" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestUserProfile_Clone(t *testing.T) {
	u := &UserProfile{FirstName: "Emily", Raw: []byte(`{"firstName":"Emily"}`)}
	c := u.Clone()
	c.Raw[2] = 'X'
	if u.Raw[2] == 'X' {
		t.Error("Clone shares raw payload")
	}
}
