package feedback

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleWords = []string{
	"salet", "abbey", "embed", "speed", "abide", "eerie", "there", "crane",
	"llama", "hello", "lolly", "geese", "sissy", "mamma", "treat", "otter",
}

func TestCompute(t *testing.T) {
	tests := []struct {
		guess, secret, want string
	}{
		{"salet", "salet", "GGGGG"},
		{"abbey", "embed", "BBGGB"},
		{"speed", "abide", "BBYBY"},
		{"eerie", "there", "YBYBG"},
		{"crane", "salet", "BBYBY"},
		{"llama", "hello", "YYBBB"},
		{"lolly", "hello", "BYGGB"},
		{"geese", "eerie", "BGYBG"},
		{"sissy", "abbey", "BBBBG"},
	}
	for _, tt := range tests {
		t.Run(tt.guess+"_"+tt.secret, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.guess, tt.secret).String())
		})
	}
}

func TestCompute_SelfMatchIsAllHit(t *testing.T) {
	for _, w := range sampleWords {
		assert.Equal(t, AllHit, Compute(w, w), w)
	}
}

func TestCompute_NotSymmetric(t *testing.T) {
	assert.NotEqual(t, Compute("crane", "salet"), Compute("salet", "crane"))
}

func TestCompute_WrongLengthIsAllMiss(t *testing.T) {
	assert.Equal(t, "BBBBB", Compute("abc", "salet").String())
	assert.Equal(t, "BBBBB", Compute("salet", "saletx").String())
}

// Presents for a letter must equal the smaller of its leftover counts in the
// guess and in the secret once hits are removed.
func TestCompute_CountConservation(t *testing.T) {
	for _, g := range sampleWords {
		for _, s := range sampleWords {
			marks := Compute(g, s).Marks()

			leftG := map[byte]int{}
			leftS := map[byte]int{}
			presents := map[byte]int{}
			for i := 0; i < Length; i++ {
				if marks[i] == MarkHit {
					require.Equal(t, g[i], s[i])
					continue
				}
				leftG[g[i]]++
				leftS[s[i]]++
				if marks[i] == MarkPresent {
					presents[g[i]]++
				}
			}
			for l, n := range leftG {
				assert.Equal(t, min(n, leftS[l]), presents[l], "guess=%s secret=%s letter=%c", g, s, l)
			}
		}
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("gybbG")
	require.NoError(t, err)
	assert.Equal(t, "GYBBG", c.String())
	assert.Equal(t, [Length]Mark{MarkHit, MarkPresent, MarkMiss, MarkMiss, MarkHit}, c.Marks())

	all, err := Parse("GGGGG")
	require.NoError(t, err)
	assert.Equal(t, AllHit, all)

	for _, bad := range []string{"", "GGGG", "GGGGGG", "GGXGG", "12345"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}
}

func TestCode_Range(t *testing.T) {
	assert.Equal(t, Code(0), FromMarks([Length]Mark{}))
	assert.Less(t, int(AllHit), NumCodes)
}

func TestColoredWord(t *testing.T) {
	out := Compute("crane", "salet").ColoredWord("crane")
	assert.Contains(t, out, "C")
	assert.Contains(t, out, "\033[43m")
	assert.Equal(t, "toolong", AllHit.ColoredWord("toolong"))
}

func TestCache_HitsAndMisses(t *testing.T) {
	c := NewCache()

	first := c.Feedback("abbey", "embed")
	assert.Equal(t, Stats{Entries: 1, Hits: 0, Misses: 1}, c.Stats())

	second := c.Feedback("abbey", "embed")
	assert.Equal(t, first, second)
	assert.Equal(t, Stats{Entries: 1, Hits: 1, Misses: 1}, c.Stats())

	// swapped arguments are a distinct key
	c.Feedback("embed", "abbey")
	assert.Equal(t, Stats{Entries: 2, Hits: 1, Misses: 2}, c.Stats())

	code, ok := c.Lookup("embed", "abbey")
	assert.True(t, ok)
	assert.Equal(t, Compute("embed", "abbey"), code)
	_, ok = c.Lookup("salet", "abbey")
	assert.False(t, ok)
	assert.Equal(t, Stats{Entries: 2, Hits: 1, Misses: 2}, c.Stats(), "lookups are not counted")
}

func TestMemo_LeavesCacheUntouchedUntilMerge(t *testing.T) {
	c := NewCache()
	c.Feedback("abbey", "embed")

	m := c.Memo()
	assert.Equal(t, Compute("abbey", "embed"), m.Feedback("abbey", "embed"))
	assert.Equal(t, Compute("crane", "salet"), m.Feedback("crane", "salet"))
	assert.Equal(t, Compute("crane", "salet"), m.Feedback("crane", "salet"))

	assert.Equal(t, Stats{Entries: 1, Hits: 0, Misses: 1}, c.Stats())
	_, ok := c.Lookup("crane", "salet")
	assert.False(t, ok)

	c.Merge(m, nil)
	assert.Equal(t, Stats{Entries: 2, Hits: 2, Misses: 2}, c.Stats())
	code, ok := c.Lookup("crane", "salet")
	assert.True(t, ok)
	assert.Equal(t, Compute("crane", "salet"), code)
}

func TestMemo_ConcurrentReaders(t *testing.T) {
	c := NewCache()
	memos := make([]*Memo, 8)
	var wg sync.WaitGroup
	for i := range memos {
		memos[i] = c.Memo()
		wg.Add(1)
		go func(m *Memo) {
			defer wg.Done()
			for _, g := range sampleWords {
				for _, s := range sampleWords {
					assert.Equal(t, Compute(g, s), m.Feedback(g, s))
				}
			}
		}(memos[i])
	}
	wg.Wait()
	assert.Zero(t, c.Len())

	c.Merge(memos...)
	n := len(sampleWords) * len(sampleWords)
	assert.Equal(t, n, c.Len())
	assert.Equal(t, uint64(len(memos)*n), c.Stats().Misses)
}

func TestCache_MatchesCompute(t *testing.T) {
	c := NewCache()
	for _, g := range sampleWords {
		for _, s := range sampleWords {
			assert.Equal(t, Compute(g, s), c.Feedback(g, s))
		}
	}
	assert.Equal(t, len(sampleWords)*len(sampleWords), c.Len())
}

func TestCache_SaveLoad(t *testing.T) {
	src := NewCache()
	src.Feedback("abbey", "embed")
	src.Feedback("crane", "salet")

	var buf bytes.Buffer
	require.NoError(t, src.Save(&buf))

	dst := NewCache()
	require.NoError(t, dst.Load(&buf))
	assert.Equal(t, 2, dst.Len())

	dst.Feedback("abbey", "embed")
	assert.Equal(t, uint64(1), dst.Stats().Hits)

	err := dst.Load(strings.NewReader("not gob"))
	assert.Error(t, err)
}
