package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Height units.
const (
	HeightUnitCM   = "cm"
	HeightUnitFeet = "feet"
)

// Profile is the canonical, fully typed profile record. The store only ever
// persists values of this shape.
type Profile struct {
	Name         string   `json:"name"`
	Birthday     string   `json:"birthday"`
	Height       float64  `json:"height"`
	Weight       float64  `json:"weight"`
	Interests    []string `json:"interests"`
	Gender       string   `json:"gender"`
	ProfileImage string   `json:"profileImage"`
	HeightUnit   string   `json:"heightUnit"`
	HeightFeet   float64  `json:"heightFeet"`
	HeightInches float64  `json:"heightInches"`
}

// DefaultProfile is the structural default returned when no profile exists.
func DefaultProfile() Profile {
	return Profile{
		Interests:  []string{},
		HeightUnit: HeightUnitCM,
	}
}

// ProfileInput is loosely typed profile data as it arrives from a caller or
// the wire: numbers may be strings, interests may be missing or not a list.
// Normalize turns it into a Profile.
type ProfileInput struct {
	Name         any `json:"name,omitempty"`
	Birthday     any `json:"birthday,omitempty"`
	Height       any `json:"height,omitempty"`
	Weight       any `json:"weight,omitempty"`
	Interests    any `json:"interests,omitempty"`
	Gender       any `json:"gender,omitempty"`
	ProfileImage any `json:"profileImage,omitempty"`
	HeightUnit   any `json:"heightUnit,omitempty"`
	HeightFeet   any `json:"heightFeet,omitempty"`
	HeightInches any `json:"heightInches,omitempty"`
}

// Input converts p back to a ProfileInput, e.g. to edit a fetched profile.
func (p Profile) Input() ProfileInput {
	interests := make([]any, 0, len(p.Interests))
	for _, i := range p.Interests {
		interests = append(interests, i)
	}
	return ProfileInput{
		Name:         p.Name,
		Birthday:     p.Birthday,
		Height:       p.Height,
		Weight:       p.Weight,
		Interests:    interests,
		Gender:       p.Gender,
		ProfileImage: p.ProfileImage,
		HeightUnit:   p.HeightUnit,
		HeightFeet:   p.HeightFeet,
		HeightInches: p.HeightInches,
	}
}

// Normalize coerces in into the canonical Profile: numbers default to 0 (also
// when unparsable), interests to an empty list, strings to "" and the height
// unit to "cm".
func (in ProfileInput) Normalize() Profile {
	return Profile{
		Name:         toString(in.Name),
		Birthday:     toString(in.Birthday),
		Height:       toNumber(in.Height),
		Weight:       toNumber(in.Weight),
		Interests:    toStringList(in.Interests),
		Gender:       toString(in.Gender),
		ProfileImage: toString(in.ProfileImage),
		HeightUnit:   toHeightUnit(in.HeightUnit),
		HeightFeet:   toNumber(in.HeightFeet),
		HeightInches: toNumber(in.HeightInches),
	}
}

// Normalize re-applies normalization to an already typed profile, fixing a
// nil interests list and an unknown height unit.
func (p Profile) Normalize() Profile {
	return p.Input().Normalize()
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

func toNumber(v any) float64 {
	if v == nil {
		return 0
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
		if v == "" {
			return 0
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toStringList(v any) []string {
	out := []string{}
	switch list := v.(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, item := range list {
			out = append(out, toString(item))
		}
	}
	return out
}

func toHeightUnit(v any) string {
	switch strings.ToLower(strings.TrimSpace(toString(v))) {
	case HeightUnitFeet, "ft", "feet/inches":
		return HeightUnitFeet
	default:
		return HeightUnitCM
	}
}
