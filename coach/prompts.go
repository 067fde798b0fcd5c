package coach

type Language string

const (
	LanguageDE Language = "de"
	LanguageEN Language = "en"
	LanguagePL Language = "pl"
)

const DefaultLanguage = LanguageDE

var systemPrompts = map[Language]string{
	LanguageDE: "Du bist Gugi – ein freundlicher, pragmatischer Gesundheitscoach. " +
		"Nutze ausschließlich die bereitgestellte Zusammenfassung (summary), keine Websuche. " +
		"Gib konkrete, kurze Tipps (1–3 Sätze), keine Diagnosen, kein medizinischer Rat. " +
		"Sprich locker, positiv, aber präzise.",
	LanguageEN: "You are Gugi – a friendly, pragmatic health coach. " +
		"Use only the provided summary; no web browsing. " +
		"Provide concrete, short tips (1–3 sentences), no diagnoses or medical advice. " +
		"Be casual, positive, and precise.",
	LanguagePL: "Jesteś Gugi – przyjaznym, pragmatycznym trenerem zdrowia. " +
		"Używaj wyłącznie podanego podsumowania; bez przeglądania sieci. " +
		"Dawaj konkretne, krótkie wskazówki (1–3 zdania), bez diagnoz i porad medycznych. " +
		"Mów swobodnie, pozytywnie i precyzyjnie.",
}

var greetingInstructions = map[Language]string{
	LanguageDE: "Gib einen sehr kurzen Tipp und einen kurzen Hinweis basierend auf der summary.",
	LanguageEN: "Give one short tip and one short remark based on the summary.",
	LanguagePL: "Podaj jedną krótką wskazówkę i jedną krótką uwagę na podstawie podsumowania.",
}

// SystemPrompt returns the coach prompt for the language, or the English
// prompt if the language is not supported.
func SystemPrompt(language Language) string {
	return lookup(systemPrompts, language)
}

// GreetingInstruction returns the user turn sent in greeting mode.
func GreetingInstruction(language Language) string {
	return lookup(greetingInstructions, language)
}

func lookup(m map[Language]string, language Language) string {
	if s, ok := m[language]; ok {
		return s
	}
	return m[LanguageEN]
}
