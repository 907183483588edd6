package config

import "testing"

func TestParseGroupChatID(t *testing.T) {
	cases := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"-1001234567890", -1001234567890, false},
		{"42", 42, false},
		{"", 0, true},
		{"not-a-number", 0, true},
		{"0", 0, true},
	}
	for _, c := range cases {
		got, err := parseGroupChatID(c.raw)
		if c.wantErr {
			if err == nil {
				t.Errorf("Expected an error for %q, got id %d", c.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Expected %q to parse, got %v", c.raw, err)
		} else if got != c.want {
			t.Errorf("Expected %d for %q, got %d", c.want, c.raw, got)
		}
	}
}
