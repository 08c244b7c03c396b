package domain

type Language string

const (
	LanguageIndonesian Language = "id"
	LanguageEnglish    Language = "en"
)

var SupportedLanguages = map[Language]bool{
	LanguageIndonesian: true,
	LanguageEnglish:    true,
}
