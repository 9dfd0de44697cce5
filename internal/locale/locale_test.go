package locale

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizer_T(t *testing.T) {
	bundle, err := NewBundle()
	require.NoError(t, err)

	tests := []struct {
		lang string
		key  string
		want string
	}{
		{"fr", "translate", "Traduire"},
		{"fa", "translate", "ترجمه"},
		{"fr", "noHistory", "Aucune traduction enregistrée."},
		{"fa", "startQuiz", "شروع آزمون"},
		{"fr", "clearConfirm", "Voulez-vous vraiment effacer tout votre historique ?"},
		{"fr", "doesNotExist", "doesNotExist"},
		{"fa", "doesNotExist", "doesNotExist"},
		{"de", "save", "Enregistrer"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, New(bundle, tt.lang).T(tt.key))
		})
	}
}

func TestLocalizer_Tf(t *testing.T) {
	bundle, err := NewBundle()
	require.NoError(t, err)

	fr := New(bundle, "fr")
	assert.Equal(t, "Score : 3 / 10", fr.Tf("score", map[string]interface{}{"Score": 3, "Total": 10}))

	fa := New(bundle, "fa")
	assert.Equal(t, "امتیاز: 3 / 10", fa.Tf("score", map[string]interface{}{"Score": 3, "Total": 10}))
}

func TestLocalizer_RTL(t *testing.T) {
	bundle, err := NewBundle()
	require.NoError(t, err)

	assert.True(t, New(bundle, "fa").RTL())
	assert.False(t, New(bundle, "fr").RTL())
	assert.False(t, New(bundle, "not a tag!").RTL())
	assert.Equal(t, "fa", New(bundle, "fa").Lang())
}

// Both languages must define the same keys
func TestLocaleFilesHaveSameKeys(t *testing.T) {
	load := func(name string) map[string]string {
		data, err := localeFS.ReadFile("locales/" + name)
		require.NoError(t, err)
		var m map[string]string
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	fr := load("active.fr.json")
	fa := load("active.fa.json")

	for key := range fr {
		assert.Contains(t, fa, key)
	}
	for key := range fa {
		assert.Contains(t, fr, key)
	}
}
