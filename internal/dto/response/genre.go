package response

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// language code -> name; only filled for admin reads
	Translations map[string]string `json:"translations,omitempty"`
}
