package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		environ []string
		want    language.Tag
	}{
		{"Default Russian", "", nil, language.Russian},
		{"Explicit English", "en", []string{"LANG=ru_RU.UTF-8"}, language.English},
		{"POSIX Locale", "", []string{"LANG=en_US.UTF-8"}, language.English},
		{"LC_ALL Wins", "", []string{"LANG=en_US.UTF-8", "LC_ALL=ru_RU.UTF-8"}, language.Russian},
		{"C Locale Falls Back", "", []string{"LANG=C"}, language.Russian},
		{"Unsupported Falls Back", "de", nil, language.Russian},
		{"C UTF-8 Locale Falls Back", "", []string{"LANG=C.UTF-8"}, language.Russian},
		{"POSIX Locale Falls Back", "", []string{"LANG=POSIX"}, language.Russian},
		{"Unsupported POSIX Locale Falls Back", "", []string{"LANG=de_DE.UTF-8"}, language.Russian},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.lang, tt.environ).Tag)
		})
	}
}

func TestCatalog_T(t *testing.T) {
	en := New(language.English)
	assert.Equal(t, "requirements.txt not found.", en.T(MsgErrManifest, "requirements.txt"))
	assert.Equal(t, "Done.", en.T(MsgDone))
	assert.Equal(t, "missing_key", en.T(Key("missing_key")))
}

func TestCatalogs_Complete(t *testing.T) {
	ru := catalogs[language.Russian]
	for key := range catalogs[language.English] {
		assert.Contains(t, ru, key)
	}
	assert.Len(t, ru, len(catalogs[language.English]))
}
