package engine

import (
	"strings"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

// subjectLanguages is a closed mapping from exam subject to the language
// capability a tutor must hold. Subjects outside the table, including the
// default English, need no additional capability.
var subjectLanguages = map[string]model.Language{
	"afrikaans": model.LanguageAfrikaans,
	"isizulu":   model.LanguageIsiZulu,
	"zulu":      model.LanguageIsiZulu,
	"setswana":  model.LanguageSetswana,
	"isixhosa":  model.LanguageIsiXhosa,
	"xhosa":     model.LanguageIsiXhosa,
	"french":    model.LanguageFrench,
}

// RequiredLanguage resolves a booking's subject to the language capability
// it demands, if any.
func RequiredLanguage(subject string) (model.Language, bool) {
	lang, ok := subjectLanguages[strings.ToLower(strings.TrimSpace(subject))]
	return lang, ok
}
