package models

import (
	"strconv"
	"strings"
)

// Display fallbacks used wherever a guide card is rendered.
const (
	GuidePhotoPlaceholder = "https://via.placeholder.com/150"
	GuideDefaultRating    = 4.5
	GuideDefaultLanguage  = "English"
	GuideDefaultSpecialty = "Various locations"
)

// Guide is a tour guide. Guides are authored outside this service and only read here.
type Guide struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PhotoURL    string   `json:"photo,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Languages   []string `json:"languages"`
	Specialties []string `json:"specialties"`
	Experience  string   `json:"experience,omitempty"`
	Destination string   `json:"destination,omitempty"`
}

func (g Guide) DisplayPhoto() string {
	if g.PhotoURL == "" {
		return GuidePhotoPlaceholder
	}
	return g.PhotoURL
}

func (g Guide) DisplayRating() float64 {
	if g.Rating == nil || *g.Rating == 0 {
		return GuideDefaultRating
	}
	return *g.Rating
}

func (g Guide) LanguagesLabel() string {
	if len(g.Languages) == 0 {
		return GuideDefaultLanguage
	}
	return strings.Join(g.Languages, ", ")
}

func (g Guide) SpecialtiesLabel() string {
	if len(g.Specialties) == 0 {
		return GuideDefaultSpecialty
	}
	return strings.Join(g.Specialties, ", ")
}

// GuideCard is the guide as the app renders it, with fallbacks applied.
type GuideCard struct {
	Guide
	DisplayPhoto     string `json:"displayPhoto"`
	DisplayRating    string `json:"displayRating"`
	LanguagesLabel   string `json:"languagesLabel"`
	SpecialtiesLabel string `json:"specialtiesLabel"`
}

func (g Guide) Card() GuideCard {
	return GuideCard{
		Guide:            g,
		DisplayPhoto:     g.DisplayPhoto(),
		DisplayRating:    strconv.FormatFloat(g.DisplayRating(), 'f', 1, 64),
		LanguagesLabel:   g.LanguagesLabel(),
		SpecialtiesLabel: g.SpecialtiesLabel(),
	}
}

func GuideCards(guides []Guide) []GuideCard {
	cards := make([]GuideCard, 0, len(guides))
	for _, g := range guides {
		cards = append(cards, g.Card())
	}
	return cards
}
