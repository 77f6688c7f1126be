package services

import (
	"regexp"
	"unicode/utf8"

	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/common"
)

// MinUsernameLength is the shortest username Register accepts.
const MinUsernameLength = 3

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateRegister(req models.RegisterRequest) error {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return common.NewAPIError(common.ErrValidation, 0, "Missing required registration fields: email, username, password")
	}
	if !emailRe.MatchString(req.Email) {
		return common.NewAPIError(common.ErrValidation, 0, "Invalid email format")
	}
	if utf8.RuneCountInString(req.Username) < MinUsernameLength {
		return common.NewAPIError(common.ErrValidation, 0, "Username must be at least 3 characters long")
	}
	return nil
}

func validateLogin(req models.LoginRequest) error {
	if req.Password == "" || (req.Email == "" && req.Username == "") {
		return common.NewAPIError(common.ErrValidation, 0, "Missing required login credentials")
	}
	return nil
}
