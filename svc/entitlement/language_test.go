package entitlement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/storykit/svc/entitlement"
)

func TestMatchLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		accept string
		want   language.Tag
	}{
		{"", language.English},
		{"es-MX,es;q=0.9,en;q=0.8", language.Spanish},
		{"fr-FR,es;q=0.5", language.Spanish},
		{"de-DE", language.English},
		{"en-GB", language.English},
		{";;;", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, entitlement.MatchLanguage(tt.accept))
		})
	}
}

func TestLanguageContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, language.English, entitlement.LanguageFromContext(context.Background()))
	ctx := entitlement.WithLanguage(context.Background(), language.Spanish)
	assert.Equal(t, language.Spanish, entitlement.LanguageFromContext(ctx))
}
