package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

func TestRequiredLanguage(t *testing.T) {
	tests := []struct {
		subject string
		want    model.Language
		needed  bool
	}{
		{"Afrikaans", model.LanguageAfrikaans, true},
		{"  afrikaans ", model.LanguageAfrikaans, true},
		{"IsiZulu", model.LanguageIsiZulu, true},
		{"zulu", model.LanguageIsiZulu, true},
		{"Setswana", model.LanguageSetswana, true},
		{"isiXhosa", model.LanguageIsiXhosa, true},
		{"Xhosa", model.LanguageIsiXhosa, true},
		{"French", model.LanguageFrench, true},
		{"English", "", false},
		{"Mathematics", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		lang, needed := RequiredLanguage(tc.subject)
		require.Equal(t, tc.needed, needed, "subject %q", tc.subject)
		if tc.needed {
			require.Equal(t, tc.want, lang, "subject %q", tc.subject)
		}
	}
}
