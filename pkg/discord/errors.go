package discord

import "translationgate/internal/domain"

// Translator renders a message id for a locale.
type Translator interface {
	T(locale, key string, data map[string]any) string
}

// TranslateDomainError maps a domain error code to a user-facing message.
func TranslateDomainError(t Translator, locale, code string) string {
	if code == "" {
		return t.T(locale, "error.generic", nil)
	}
	return t.T(locale, "error."+code, nil)
}

// DomainErrorMessage extracts the domain error code and immediately resolves
// it to a user-facing message.
func DomainErrorMessage(t Translator, locale string, err error) string {
	if err == nil {
		return ""
	}
	return TranslateDomainError(t, locale, domain.Code(err))
}
