package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	l, err := Load("", "")
	require.NoError(t, err)

	answers, allowed := l.Stats()
	assert.Greater(t, answers, 100)
	assert.Greater(t, allowed, answers)

	assert.True(t, l.IsAllowed("salet"))
	assert.True(t, l.IsAllowed("ROATE"), "lookups are case-insensitive")
	assert.False(t, l.IsAllowed("zzzzz"))
	for _, w := range l.Answers {
		assert.True(t, l.IsAllowed(w), "answer %s must be allowed", w)
	}
}

func TestLoad_BothFiles(t *testing.T) {
	ans := writeList(t, "answers.txt", "Crane\nslate\n\n# comment\ntoolong\n")
	all := writeList(t, "allowed.txt", "roate\nsalet\ncrane\n")

	l, err := Load(ans, all)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, l.Answers)
	assert.Equal(t, []string{"roate", "salet", "crane", "slate"}, l.Allowed)
}

func TestLoad_SingleFileFeedsBothLists(t *testing.T) {
	p := writeList(t, "words.txt", "crane\nslate\n")

	l, err := Load("", p)
	require.NoError(t, err)
	assert.Equal(t, l.Answers, l.Allowed)

	l, err = Load(p, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, l.Allowed)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), "")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	l, err := New([]string{"crane", "CRANE", " slate ", "abc"}, []string{"roate"})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, l.Answers)
	assert.Equal(t, []string{"roate", "crane", "slate"}, l.Allowed)

	_, err = New([]string{"x"}, nil)
	assert.ErrorIs(t, err, ErrNoAnswers)
}

func TestValidAndNormalize(t *testing.T) {
	assert.True(t, Valid("salet"))
	assert.False(t, Valid("Salet"))
	assert.False(t, Valid("sale"))
	assert.False(t, Valid("sal3t"))

	w, err := Normalize("  SALET ")
	require.NoError(t, err)
	assert.Equal(t, "salet", w)

	_, err = Normalize("sa-et")
	assert.ErrorIs(t, err, ErrInvalidWord)
}
