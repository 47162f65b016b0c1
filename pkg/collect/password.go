package collect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/huh"
)

// MinPasswordLength is the shortest admin password the collector accepts.
const MinPasswordLength = 8

// PasswordReader returns a single password entry. The production reader is a
// masked terminal prompt; tests inject a scripted sequence.
type PasswordReader func(ctx context.Context, title string) (string, error)

// ValidatePassword rejects empty and shorter-than-minimum values. This is a
// local check only; it never touches the network.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// CollectPassword prompts twice and compares the entries, retrying until a
// valid matching pair is supplied. The plaintext value is returned to the
// caller and never logged.
func CollectPassword(ctx context.Context, read PasswordReader) (string, error) {
	for {
		first, err := read(ctx, "SQL admin password")
		if err != nil {
			return "", err
		}
		if err := ValidatePassword(first); err != nil {
			slog.Warn("Password rejected", "reason", err.Error())
			continue
		}

		second, err := read(ctx, "Confirm SQL admin password")
		if err != nil {
			return "", err
		}
		if first != second {
			slog.Warn("Password entries do not match, try again")
			continue
		}

		return first, nil
	}
}

// terminalPasswordReader prompts with input echo masked.
func terminalPasswordReader(ctx context.Context, title string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&value),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return value, nil
}
