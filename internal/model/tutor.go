package model

import "time"

// TutorRole is the single declared capability a tutor can fulfil. It is
// stored as text; legacy rows carry labels like "Both (Reader & Scribe)",
// which normalization in the engine collapses to RoleBoth.
type TutorRole string

const (
	RoleReader        TutorRole = "Reader"
	RoleScribe        TutorRole = "Scribe"
	RoleInvigilator   TutorRole = "Invigilator"
	RolePrompter      TutorRole = "Prompter"
	RoleBoth          TutorRole = "Both"
	RoleAllOfTheAbove TutorRole = "All of the Above"
)

type Language string

const (
	LanguageAfrikaans Language = "afrikaans"
	LanguageIsiZulu   Language = "isizulu"
	LanguageSetswana  Language = "setswana"
	LanguageIsiXhosa  Language = "isixhosa"
	LanguageFrench    Language = "french"
)

type Tutor struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Town         string    `json:"town"`
	Approved     bool      `json:"approved"`
	Role         TutorRole `json:"role"`
	Afrikaans    bool      `json:"afrikaans"`
	IsiZulu      bool      `json:"isizulu"`
	Setswana     bool      `json:"setswana"`
	IsiXhosa     bool      `json:"isixhosa"`
	French       bool      `json:"french"`
	HasTransport bool      `json:"has_transport"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasLanguage reports whether the tutor declared the given language
// capability.
func (t Tutor) HasLanguage(lang Language) bool {
	switch lang {
	case LanguageAfrikaans:
		return t.Afrikaans
	case LanguageIsiZulu:
		return t.IsiZulu
	case LanguageSetswana:
		return t.Setswana
	case LanguageIsiXhosa:
		return t.IsiXhosa
	case LanguageFrench:
		return t.French
	}
	return false
}
