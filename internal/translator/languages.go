package translator

import "strings"

// TargetTag is the model tag every supported language is translated into.
const TargetTag = "eng_Latn"

// Language is an entry of the supported source languages.
type Language struct {
	Code string
	Name string
	Tag  string
}

var supported = map[string]Language{
	"hi": {Code: "hi", Name: "Hindi", Tag: "hin_Deva"},
	"gu": {Code: "gu", Name: "Gujarati", Tag: "guj_Gujr"},
	"pa": {Code: "pa", Name: "Punjabi", Tag: "pan_Guru"},
	"ta": {Code: "ta", Name: "Tamil", Tag: "tam_Taml"},
	"te": {Code: "te", Name: "Telugu", Tag: "tel_Telu"},
	"ml": {Code: "ml", Name: "Malayalam", Tag: "mal_Mlym"},
}

// Lookup returns the supported language for an ISO 639-1 code.
func Lookup(code string) (Language, bool) {
	lang, ok := supported[strings.ToLower(strings.TrimSpace(code))]
	return lang, ok
}

// UnsupportedName is the display name reported for codes outside the list.
func UnsupportedName(code string) string {
	return "Unsupported (" + code + ")"
}
