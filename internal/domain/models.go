// Package domain holds the records exchanged with the SalaryHelper backend.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an identifier the backend sends either as a string or as a number.
type ID string

// UnmarshalJSON accepts JSON strings, numbers and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("id must be a string or number: %w", err)
		}
		*id = ID(n.String())
	}
	return nil
}

func (id ID) String() string { return string(id) }

type User struct {
	ID        ID     `json:"id"`
	Phone     string `json:"phone,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	Role      string `json:"role,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoginResult is the data of a successful login. RawUser keeps the user
// object byte for byte; User is its typed view.
type LoginResult struct {
	Token   string
	User    *User
	RawUser json.RawMessage
}

type loginWire struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

func (r *LoginResult) UnmarshalJSON(b []byte) error {
	var w loginWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	r.Token, r.RawUser, r.User = w.Token, w.User, nil
	if len(w.User) == 0 || bytes.Equal(w.User, []byte("null")) {
		return nil
	}
	var u User
	if err := json.Unmarshal(w.User, &u); err != nil {
		return fmt.Errorf("decode login user: %w", err)
	}
	r.User = &u
	return nil
}

// MarshalJSON writes the user as received when it is known.
func (r LoginResult) MarshalJSON() ([]byte, error) {
	w := loginWire{Token: r.Token, User: r.RawUser}
	if len(w.User) == 0 && r.User != nil {
		raw, err := json.Marshal(r.User)
		if err != nil {
			return nil, err
		}
		w.User = raw
	}
	return json.Marshal(w)
}

type Conversation struct {
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	CreatedAt string    `json:"created_at,omitempty"`
	UpdatedAt string    `json:"updated_at,omitempty"`
	Messages  []Message `json:"messages,omitempty"`
}

type Message struct {
	MessageID ID     `json:"message_id,omitempty"`
	Role      string `json:"role,omitempty"`
	Text      string `json:"text,omitempty"`
	Status    string `json:"status,omitempty"`
	AIReply   string `json:"ai_reply,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Attachment struct {
	FileID   ID     `json:"file_id"`
	URL      string `json:"url"`
	Hash     string `json:"hash,omitempty"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

type TemplateField struct {
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Required bool   `json:"required,omitempty"`
}

type Template struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Fields      []TemplateField `json:"fields,omitempty"`
	Content     string          `json:"content,omitempty"`
}

type RenderedTemplate struct {
	TemplateID ID     `json:"template_id,omitempty"`
	Content    string `json:"content"`
}

type Document struct {
	ID         ID                `json:"id"`
	TemplateID ID                `json:"template_id,omitempty"`
	Title      string            `json:"title"`
	Data       map[string]string `json:"data,omitempty"`
	Content    string            `json:"content,omitempty"`
	CreatedAt  string            `json:"created_at,omitempty"`
}

type Order struct {
	OrderID       ID      `json:"order_id"`
	ProductType   string  `json:"product_type,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Status        string  `json:"status,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// AdminStats is free-form; the backend reports whatever counters it keeps.
type AdminStats map[string]any
