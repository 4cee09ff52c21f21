package sources

// DefaultAcceptLanguage is sent for countries without a locale mapping.
const DefaultAcceptLanguage = "en-US,en;q=0.5"

// acceptLanguages maps a source country to the Accept-Language header sent
// with its requests. Unmapped countries fall back to DefaultAcceptLanguage.
var acceptLanguages = map[string]string{
	"japan":       "ja-JP,ja;q=0.9,en;q=0.8",
	"china":       "zh-CN,zh;q=0.9,en;q=0.8",
	"south_korea": "ko-KR,ko;q=0.9,en;q=0.8",
	"india":       "en-IN,en;q=0.9,hi;q=0.8",
	"singapore":   "en-SG,en;q=0.9,zh;q=0.8",
	"hong_kong":   "zh-HK,zh;q=0.9,en;q=0.8",
	"uk":          "en-GB,en;q=0.5",
	"germany":     "de-DE,de;q=0.9,en;q=0.8",
	"france":      "fr-FR,fr;q=0.9,en;q=0.8",
	"spain":       "es-ES,es;q=0.9,en;q=0.8",
	"usa":         "en-US,en;q=0.5",
}

// languageTags maps a source country to the language tag assigned to its
// articles. The tag is fixed per country, never detected from content.
// Indian tech publications are predominantly English, so india maps to en.
var languageTags = map[string]string{
	"japan":       "ja",
	"china":       "zh",
	"south_korea": "ko",
	"germany":     "de",
	"france":      "fr",
	"spain":       "es",
}

// Languages is the fixed language set reports count over.
var Languages = []string{"en", "zh", "ja", "ko", "de", "fr", "es"}

// Categories is the fixed category set reports count over.
var Categories = []string{CategoryTechnology, CategoryBusiness, CategoryInvesting}

// AcceptLanguage returns the Accept-Language header value for a country.
func AcceptLanguage(country string) string {
	if v, ok := acceptLanguages[country]; ok {
		return v
	}
	return DefaultAcceptLanguage
}

// LanguageTag returns the article language tag for a country.
func LanguageTag(country string) string {
	if v, ok := languageTags[country]; ok {
		return v
	}
	return "en"
}
