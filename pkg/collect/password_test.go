package collect

import (
	"context"
	"errors"
	"testing"
)

// scriptedReader replays a fixed sequence of entries.
func scriptedReader(entries ...string) PasswordReader {
	i := 0
	return func(ctx context.Context, title string) (string, error) {
		if i >= len(entries) {
			return "", errors.New("out of scripted entries")
		}
		entry := entries[i]
		i++
		return entry, nil
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "hunter2hunter2"},
		{name: "exactly minimum", password: "12345678"},
		{name: "empty", password: "", wantErr: true},
		{name: "too short", password: "hunter2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestCollectPassword(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    string
	}{
		{
			name:    "accepted first try",
			entries: []string{"hunter2hunter2", "hunter2hunter2"},
			want:    "hunter2hunter2",
		},
		{
			name:    "short entry reprompts without confirmation",
			entries: []string{"short", "hunter2hunter2", "hunter2hunter2"},
			want:    "hunter2hunter2",
		},
		{
			name:    "mismatch reprompts from the start",
			entries: []string{"hunter2hunter2", "hunter2hunter3", "correcthorse1", "correcthorse1"},
			want:    "correcthorse1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CollectPassword(context.Background(), scriptedReader(tt.entries...))
			if err != nil {
				t.Fatalf("CollectPassword() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CollectPassword() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollectPasswordReaderError(t *testing.T) {
	read := func(ctx context.Context, title string) (string, error) {
		return "", errors.New("terminal closed")
	}
	if _, err := CollectPassword(context.Background(), read); err == nil {
		t.Fatal("CollectPassword() error = nil, want reader error propagated")
	}
}
