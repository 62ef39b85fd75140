package domain

import "errors"

// Domain errors.
var (
	ErrOptionNotFound             = errors.New("option introuvable")
	ErrCategoryNotFound           = errors.New("catégorie introuvable pour cette entité")
	ErrCatalogUnavailable         = errors.New("catalogue des catégories indisponible")
	ErrTranslationServiceInactive = errors.New("le service de traduction n'est pas actif")
	ErrMissingCapability          = errors.New("capacité d'administration requise")
	ErrInvalidNonce               = errors.New("jeton de formulaire invalide ou expiré")
	ErrInvalidHookPayload         = errors.New("requête de hook invalide")
)

var codes = map[error]string{
	ErrOptionNotFound:             "option_not_found",
	ErrCategoryNotFound:           "category_not_found",
	ErrCatalogUnavailable:         "catalog_unavailable",
	ErrTranslationServiceInactive: "translation_service_inactive",
	ErrMissingCapability:          "missing_capability",
	ErrInvalidNonce:               "invalid_nonce",
	ErrInvalidHookPayload:         "invalid_hook_payload",
}

// Code returns the stable code of the first domain error found in err's chain,
// or "" when err does not wrap a domain error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for target, code := range codes {
		if errors.Is(err, target) {
			return code
		}
	}
	return ""
}
