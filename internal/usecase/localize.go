package usecase

import (
	"context"
	"strings"

	"cineticket/internal/data/entity"
	"cineticket/pkg/translate"
	"cineticket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// genreName returns the translation for lang, or the original name.
// Language codes compare case-insensitively.
func genreName(genre *entity.Genre, lang string) string {
	if lang == "" {
		return genre.Name
	}
	for _, t := range genre.Translations {
		if strings.EqualFold(t.LanguageCode, lang) {
			return t.Name
		}
	}
	return genre.Name
}

// movieText returns title and description for lang, falling back to the
// original text for whichever part has no translation.
func movieText(movie *entity.Movie, lang string) (string, *string) {
	if lang == "" {
		return movie.Title, movie.Description
	}
	for _, t := range movie.Translations {
		if strings.EqualFold(t.LanguageCode, lang) {
			title := t.Title
			if title == "" {
				title = movie.Title
			}
			desc := t.Description
			if desc == nil {
				desc = movie.Description
			}
			return title, desc
		}
	}
	return movie.Title, movie.Description
}

// catalogTranslator produces translation rows for catalog texts.
// Translation is best-effort: failures yield fewer rows, never an error.
type catalogTranslator struct {
	translator translate.Translator
	source     string
	languages  []string
	log        *zap.Logger
}

func newCatalogTranslator(t translate.Translator, config utils.TranslationConfig, log *zap.Logger) *catalogTranslator {
	source := utils.NormalizeLang(config.SourceLanguage)
	if source == "" {
		source = "en"
	}
	return &catalogTranslator{
		translator: t,
		source:     source,
		languages:  config.Languages,
		log:        log.With(zap.String("component", "catalog_translator")),
	}
}

func (c *catalogTranslator) translate(ctx context.Context, text string) map[string]string {
	if c == nil || c.translator == nil || text == "" || len(c.languages) == 0 {
		return nil
	}
	out, err := c.translator.TranslateMultiple(ctx, text, c.languages, c.source)
	if err != nil {
		c.log.Warn("Translation unavailable", zap.Error(err))
		return nil
	}
	return out
}

func (c *catalogTranslator) genreTranslations(ctx context.Context, genreID uuid.UUID, name string) []entity.GenreTranslation {
	names := c.translate(ctx, name)
	translations := make([]entity.GenreTranslation, 0, len(names))
	for _, lang := range c.orderedLanguages(names) {
		translations = append(translations, entity.GenreTranslation{
			ID:           uuid.New(),
			GenreID:      genreID,
			LanguageCode: lang,
			Name:         names[lang],
		})
	}
	return translations
}

func (c *catalogTranslator) movieTranslations(ctx context.Context, movieID uuid.UUID, title string, description *string) []entity.MovieTranslation {
	titles := c.translate(ctx, title)
	var descriptions map[string]string
	if description != nil {
		descriptions = c.translate(ctx, *description)
	}

	translations := make([]entity.MovieTranslation, 0, len(titles))
	for _, lang := range c.orderedLanguages(titles) {
		t := entity.MovieTranslation{
			ID:           uuid.New(),
			MovieID:      movieID,
			LanguageCode: lang,
			Title:        titles[lang],
		}
		if d, ok := descriptions[lang]; ok {
			t.Description = &d
		}
		translations = append(translations, t)
	}
	return translations
}

// orderedLanguages keeps the configured order so inserts are deterministic
func (c *catalogTranslator) orderedLanguages(values map[string]string) []string {
	var langs []string
	for _, lang := range c.languages {
		if _, ok := values[lang]; ok {
			langs = append(langs, lang)
		}
	}
	return langs
}
