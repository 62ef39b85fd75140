package entities

// LanguageState is what the translation service reports for the current request.
type LanguageState struct {
	Current  string
	Original string
	FullURL  string // URL of the current request in the original language
}

// PageAction is the outcome of the pre-process check.
type PageAction string

const (
	ActionContinue PageAction = "continue"
	ActionRedirect PageAction = "redirect"
)

// PageDecision tells the translation service whether to render the translated
// page or redirect to Location.
type PageDecision struct {
	Action   PageAction
	Location string
}

func Continue() PageDecision {
	return PageDecision{Action: ActionContinue}
}

func RedirectTo(location string) PageDecision {
	return PageDecision{Action: ActionRedirect, Location: location}
}

func (d PageDecision) IsRedirect() bool {
	return d.Action == ActionRedirect
}
