package models

import "encoding/json"

// User is the operator object returned by the remote auth endpoint.
// Fields other than name, email and role are preserved in Extra.
type User struct {
	Name  string                 `json:"Name"`
	Email string                 `json:"Email"`
	Role  string                 `json:"Role,omitempty"`
	Extra map[string]interface{} `json:"-"`
}

var userKnownKeys = map[string]struct{}{"Name": {}, "Email": {}, "Role": {}}

// UnmarshalJSON keeps unknown fields so the session round-trips the backend object.
func (u *User) UnmarshalJSON(data []byte) error {
	raw := map[string]interface{}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User{}
	u.Name = stringField(raw, "Name")
	u.Email = stringField(raw, "Email")
	u.Role = stringField(raw, "Role")
	for k, v := range raw {
		if _, known := userKnownKeys[k]; known {
			continue
		}
		if u.Extra == nil {
			u.Extra = map[string]interface{}{}
		}
		u.Extra[k] = v
	}
	return nil
}

// MarshalJSON flattens Extra back next to the known fields.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(u.Extra)+3)
	for k, v := range u.Extra {
		out[k] = v
	}
	out["Name"] = u.Name
	out["Email"] = u.Email
	if u.Role != "" {
		out["Role"] = u.Role
	}
	return json.Marshal(out)
}

func stringField(raw map[string]interface{}, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
