package models

// CategoryTranslation maps a local category code to its English label.
// The mapping is not necessarily total; untranslated codes are expected.
type CategoryTranslation struct {
	Name        string `json:"product_category_name"`
	NameEnglish string `json:"product_category_name_english"`
}
