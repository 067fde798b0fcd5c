package coach

// ModelTable resolves requested model names for one provider. Every name,
// known or not, resolves to Canonical, so callers asking for a retired model
// still reach a supported one.
type ModelTable struct {
	Provider  string
	Canonical string
	aliases   map[string]string
}

// Gemini is the default table.
var Gemini = ModelTable{
	Provider:  "gemini",
	Canonical: "gemini-2.0-flash",
	aliases: map[string]string{
		"gemini-2.0-flash": "gemini-2.0-flash",
		"gemini-1.5-flash": "gemini-2.0-flash",
		"flash":            "gemini-2.0-flash",
		"default":          "gemini-2.0-flash",
		"":                 "gemini-2.0-flash",
	},
}

// SingleModel returns a table that resolves every name to model.
func SingleModel(provider, model string) ModelTable {
	return ModelTable{
		Provider:  provider,
		Canonical: model,
	}
}

func (mt ModelTable) Normalize(requested string) string {
	if m, ok := mt.aliases[requested]; ok && m != "" {
		return m
	}
	return mt.Canonical
}
