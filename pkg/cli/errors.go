package cli

import "fmt"

// hinted is implemented by errors carrying a user-facing suggestion.
type hinted interface {
	Hint() string
}

// formatError renders an error with its hint, when one exists.
func formatError(err error) string {
	if h, ok := err.(hinted); ok {
		return fmt.Sprintf("Error: %v\n\n%s", err, h.Hint())
	}
	return fmt.Sprintf("Error: %v", err)
}
