package domain

import (
	"encoding/json"
	"testing"
)

func TestIDAcceptsStringsAndNumbers(t *testing.T) {
	cases := map[string]ID{
		`{"id":"abc-1"}`: "abc-1",
		`{"id":42}`:      "42",
		`{"id":null}`:    "",
	}
	for raw, want := range cases {
		var u User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if u.ID != want {
			t.Fatalf("unmarshal %s: got %q want %q", raw, u.ID, want)
		}
	}
}

func TestIDRejectsObjects(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"id":{"x":1}}`), &u); err == nil {
		t.Fatalf("expected error for object id")
	}
}

func TestLoginResultKeepsRawUser(t *testing.T) {
	var res LoginResult
	raw := `{"token":"t1","user":{"id":1,"vip_level":3}}`
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Token != "t1" || string(res.RawUser) != `{"id":1,"vip_level":3}` {
		t.Fatalf("decoded %#v", res)
	}
	if res.User == nil || res.User.ID != "1" {
		t.Fatalf("typed user = %#v", res.User)
	}

	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Fatalf("marshal = %s, want %s", out, raw)
	}
}

func TestLoginResultNullUser(t *testing.T) {
	var res LoginResult
	if err := json.Unmarshal([]byte(`{"token":"","user":null}`), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.User != nil {
		t.Fatalf("expected nil user, got %#v", res.User)
	}
}
