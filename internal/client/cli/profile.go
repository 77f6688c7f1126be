package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/profilesync/internal/client/models"
)

// Profile prints the stored profile of the logged-in user.
func (a *App) Profile(ctx context.Context) error {
	resp, err := a.identity.GetProfile(ctx)
	if err != nil {
		return err
	}
	if resp.Message != "" {
		printlnFn(resp.Message)
	}
	printlnFn(formatProfile(resp.Data))
	return nil
}

// CreateProfile asks for every field and saves a new profile.
func (a *App) CreateProfile(ctx context.Context) error {
	in, err := a.promptProfile(models.DefaultProfile())
	if err != nil {
		return err
	}
	resp, err := a.identity.CreateProfile(ctx, in)
	if err != nil {
		return err
	}
	printlnFn(resp.Message)
	return nil
}

// UpdateProfile shows the current values as defaults; an empty answer keeps
// a field unchanged.
func (a *App) UpdateProfile(ctx context.Context) error {
	current, err := a.identity.GetProfile(ctx)
	if err != nil {
		return err
	}
	in, err := a.promptProfile(current.Data)
	if err != nil {
		return err
	}
	resp, err := a.identity.UpdateProfile(ctx, in)
	if err != nil {
		return err
	}
	printlnFn(resp.Message)
	return nil
}

func (a *App) promptProfile(cur models.Profile) (models.ProfileInput, error) {
	in := cur.Input()
	ask := func(prompt, current string) (string, error) {
		return GetTextWithDefault(a.reader, prompt, current, a.out)
	}

	var err error
	fields := []struct {
		prompt  string
		current string
		set     func(string)
	}{
		{"Name", cur.Name, func(v string) { in.Name = v }},
		{"Birthday (YYYY-MM-DD)", cur.Birthday, func(v string) { in.Birthday = v }},
		{"Gender", cur.Gender, func(v string) { in.Gender = v }},
		{"Height unit (cm|feet)", cur.HeightUnit, func(v string) { in.HeightUnit = v }},
	}
	for _, f := range fields {
		v, e := ask(f.prompt, f.current)
		if e != nil {
			return in, e
		}
		f.set(v)
	}

	unit := models.ProfileInput{HeightUnit: in.HeightUnit}.Normalize().HeightUnit
	if unit == models.HeightUnitFeet {
		if in.HeightFeet, err = ask("Height, feet", number(cur.HeightFeet)); err != nil {
			return in, err
		}
		if in.HeightInches, err = ask("Height, inches", number(cur.HeightInches)); err != nil {
			return in, err
		}
	} else {
		if in.Height, err = ask("Height, cm", number(cur.Height)); err != nil {
			return in, err
		}
	}
	if in.Weight, err = ask("Weight", number(cur.Weight)); err != nil {
		return in, err
	}

	interests, err := ask("Interests (comma separated)", strings.Join(cur.Interests, ", "))
	if err != nil {
		return in, err
	}
	in.Interests = SplitList(interests)

	if in.ProfileImage, err = ask("Profile image URL", cur.ProfileImage); err != nil {
		return in, err
	}
	return in, nil
}

func number(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatProfile(p models.Profile) string {
	height := fmt.Sprintf("%s cm", number(p.Height))
	if p.HeightUnit == models.HeightUnitFeet {
		height = fmt.Sprintf("%s ft %s in", number(p.HeightFeet), number(p.HeightInches))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:      %s\n", p.Name)
	fmt.Fprintf(&sb, "Birthday:  %s\n", p.Birthday)
	fmt.Fprintf(&sb, "Gender:    %s\n", p.Gender)
	fmt.Fprintf(&sb, "Height:    %s\n", height)
	fmt.Fprintf(&sb, "Weight:    %s\n", number(p.Weight))
	fmt.Fprintf(&sb, "Interests: %s\n", strings.Join(p.Interests, ", "))
	fmt.Fprintf(&sb, "Image:     %s", p.ProfileImage)
	return sb.String()
}
