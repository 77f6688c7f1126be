package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, username and password and creates an account.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.identity.Register(ctx, models.RegisterRequest{Email: email, Username: username, Password: string(password)})
	if err != nil {
		return err
	}

	if resp.AccessToken != "" {
		a.userName = username
	}
	printlnFn(fmt.Sprintf("Registered %s%s", username, userIDSuffix(resp)))
	if resp.Message != "" {
		printlnFn(resp.Message)
	}
	return nil
}

// Login prompts for an email or username and a password. An identifier
// containing "@" is sent as the email.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := models.LoginRequest{Password: string(password)}
	if strings.Contains(identifier, "@") {
		req.Email = identifier
	} else {
		req.Username = identifier
	}

	resp, err := a.identity.Login(ctx, req)
	if err != nil {
		return err
	}

	a.userName = identifier
	if resp.User != nil && resp.User.Username != "" {
		a.userName = resp.User.Username
	}
	printlnFn("Login successful" + userIDSuffix(resp))
	return nil
}

// Exists reports whether an email or username is already registered.
func (a *App) Exists(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or username", a.out)
	if err != nil {
		return err
	}
	if a.identity.CheckUserExists(ctx, identifier) {
		printlnFn(identifier + " is registered")
	} else {
		printlnFn(identifier + " is not registered")
	}
	return nil
}

// Logout forgets the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.identity.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	printlnFn("Logged out")
	return nil
}

func userIDSuffix(resp *models.AuthResponse) string {
	if resp.User == nil || resp.User.ID == "" {
		return ""
	}
	return fmt.Sprintf(" (id %s)", resp.User.ID)
}
