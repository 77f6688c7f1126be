package cli

import (
	"context"
	"fmt"
	"time"
)

// Ping runs the backend connection test.
func (a *App) Ping(ctx context.Context) error {
	if a.identity.TestConnection(ctx) {
		printlnFn("API reachable")
	} else {
		printlnFn("API unreachable")
	}
	return nil
}

// Status prints the backend, the last monitor result and the session.
func (a *App) Status(ctx context.Context) error {
	printlnFn("Backend:", a.identity.Mode())

	if a.monitor != nil {
		checked := "never"
		if t := a.monitor.LastChecked(); !t.IsZero() {
			checked = t.Format(time.RFC3339)
		}
		printlnFn(fmt.Sprintf("Connectivity: %s (last checked %s)", a.monitor.Status(), checked))
	}

	s, err := a.identity.Session(ctx)
	if err != nil {
		return err
	}
	if s.IsZero() {
		printlnFn("Session: none")
		return nil
	}
	user := s.UserID
	if user == "" {
		user = "unknown user"
	}
	printlnFn(fmt.Sprintf("Session: %s, issued %s", user, s.IssuedAt.Format(time.RFC3339)))
	return nil
}
