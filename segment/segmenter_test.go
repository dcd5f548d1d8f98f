package segment

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/lyricseg/measure"
)

// corpus exercises every strategy of the cascade.
var corpus = []string{
	"",
	"   \n\n  ",
	"Hello world. This is a test sentence that is quite long indeed.",
	"Dr. Smith met Mr. Jones. Then they left the building together.",
	"semi-detached house - built in 1990",
	"One, two, three, four, five, six, seven, eight, nine, ten",
	"abcdefghijabcdefghijabcdefghijabcdefghijabcdefghij",
	"你好！ 我爱你！ 再见了朋友们！",
	"我们一起唱歌，一起跳舞；直到天亮：永远不会停下来。",
	"I keep waiting... and waiting... and waiting for you to call me back home tonight",
	"Verse 1\r\nWalking down the road, I saw J. R. R. Tolkien -- or someone like him -- talking to St. Peter.\r\n\r\nChorus\r\nOh oh oh oh oh oh oh oh oh oh oh oh oh oh oh oh oh oh oh oh",
	"tabs\tand  double  spaces\t\tshould not   be lost, even when the line   is long enough to split.",
	"What?! Really?!! No way!!! I can't believe it... Tell me more, tell me more — please!",
	"supercalifragilisticexpialidocious is a very long word, isn't it? Yes it is.",
	"word \u0301word la la la la la la la la, la la \u0301 la",
}

var limits = []int{1, 3, 5, 10, 14, 20, 40}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestLyrics_NonLoss(t *testing.T) {
	for _, text := range corpus {
		for _, limit := range limits {
			lines := Lyrics(text, limit)
			assert.Equal(t, stripSpace(text), stripSpace(strings.Join(lines, "")),
				"limit=%d text=%q", limit, text)
		}
	}
}

func TestSegmenter_NonLossAcrossCounters(t *testing.T) {
	counters := map[string]measure.Counter{
		"runes":     measure.NewRuneCounter(),
		"graphemes": measure.NewGraphemeCounter(),
		"cells":     measure.NewCellCounter(),
	}
	for name, counter := range counters {
		t.Run(name, func(t *testing.T) {
			s := New().WithCounter(counter)
			for _, text := range corpus {
				for _, limit := range limits {
					lines := s.Lines(text, limit)
					assert.Equal(t, stripSpace(text), stripSpace(strings.Join(lines, "")),
						"limit=%d text=%q", limit, text)
				}
			}
		})
	}
}

func TestSegmenter_SpaceWithCombiningMarkIsKept(t *testing.T) {
	text := "word \u0301word la la la la"
	lines := New().WithCounter(measure.NewGraphemeCounter()).Lines(text, 5)
	assert.Contains(t, strings.Join(lines, ""), "\u0301")
	assert.Equal(t, stripSpace(text), stripSpace(strings.Join(lines, "")))
}

func TestLyrics_NonEmptyLines(t *testing.T) {
	for _, text := range corpus {
		for _, limit := range limits {
			for _, line := range Lyrics(text, limit) {
				assert.NotEmpty(t, strings.TrimSpace(line), "limit=%d text=%q", limit, text)
				assert.Equal(t, strings.TrimSpace(line), line, "line not trimmed")
			}
		}
	}
}

func TestLyrics_BoundedLength(t *testing.T) {
	counter := measure.NewRuneCounter()
	for _, text := range corpus {
		for _, limit := range limits {
			th := NewThresholds(limit)
			for _, line := range Lyrics(text, limit) {
				assert.LessOrEqual(t, float64(counter.Count(line)), th.MaxLen,
					"limit=%d line=%q", limit, line)
			}
		}
	}
}

func TestLyrics_Idempotent(t *testing.T) {
	s := New()
	for _, text := range corpus {
		first := s.Lines(text, 14)
		second := s.Lines(text, 14)
		assert.Equal(t, first, second)
	}
}

func TestLyrics_EmptyInput(t *testing.T) {
	assert.Empty(t, Lyrics("", 14))
	assert.Empty(t, Lyrics("   \n\n  ", 14))
	assert.NotNil(t, Lyrics("", 14))
}

func TestLyrics_AbbreviationPreservation(t *testing.T) {
	lines := Lyrics("Dr. Smith met Mr. Jones.", 100)
	assert.Equal(t, []string{"Dr. Smith met Mr. Jones."}, lines)
}

func TestLyrics_AbbreviationDoesNotSplitSentence(t *testing.T) {
	lines := Lyrics("Dr. Smith met Mr. Jones. Then they left the building together.", 20)
	assert.Equal(t, []string{
		"Dr. Smith met Mr. Jones.",
		"Then they left the",
		"building together.",
	}, lines)
}

func TestLyrics_SentenceBoundary(t *testing.T) {
	lines := Lyrics("Hello world. This is a test sentence that is quite long indeed.", 20)
	require.NotEmpty(t, lines)
	assert.Equal(t, "Hello world.", lines[0])
	assert.Equal(t, []string{
		"Hello world.",
		"This is a test",
		"sentence that is",
		"quite long indeed.",
	}, lines)
}

func TestLyrics_HyphenatedWord(t *testing.T) {
	lines := Lyrics("semi-detached house - built in 1990", 10)
	assert.Equal(t, []string{"semi-detached", "house -", "built in 1990"}, lines)
	for _, line := range lines {
		assert.False(t, strings.HasSuffix(line, "semi-"), "split inside hyphenated word")
		assert.False(t, strings.HasPrefix(line, "detached"), "split inside hyphenated word")
	}
}

func TestLyrics_ClauseReflow(t *testing.T) {
	lines := Lyrics("One, two, three, four, five, six, seven, eight, nine, ten", 10)
	assert.Equal(t, []string{
		"One, two,",
		"three, four,",
		"five, six,",
		"seven, eight,",
		"nine, ten",
	}, lines)
}

func TestLyrics_HardCut(t *testing.T) {
	word := strings.Repeat("abcdefghij", 5)
	lines := Lyrics(word, 10)

	require.Greater(t, len(lines), 1)
	assert.Equal(t, word, strings.Join(lines, ""))
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 15)
	}
	assert.Equal(t, []string{"abcdefghij", "abcdefghij", "abcdefghij", "abcdefghij", "abcdefghij"}, lines)
}

func TestLyrics_FullWidthPunctuation(t *testing.T) {
	lines := Lyrics("你好！ 我爱你！ 再见了朋友们！", 4)
	assert.Equal(t, []string{"你好！", "我爱你！", "再见了朋友们！"}, lines)
}

func TestLyrics_ParagraphsNeverMerge(t *testing.T) {
	lines := Lyrics("short one\r\n\r\nshort two\n", 40)
	assert.Equal(t, []string{"short one", "short two"}, lines)
}

func TestLyrics_LongParagraph(t *testing.T) {
	text := strings.Repeat("la ", 10000)
	lines := Lyrics(text, 14)

	require.NotEmpty(t, lines)
	assert.Equal(t, stripSpace(text), stripSpace(strings.Join(lines, "")))
}

func TestLyrics_LinearGrowth(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	elapsed := func(piece string, n int) time.Duration {
		text := strings.Repeat(piece, n/len(piece))
		start := time.Now()
		lines := Lyrics(text, 14)
		d := time.Since(start)
		require.NotEmpty(t, lines)
		return d
	}

	for _, piece := range []string{"la ", "x"} {
		small := elapsed(piece, 25000)
		large := elapsed(piece, 100000)
		// Four times the input: linear work stays well under eight times
		// the time, quadratic work is near sixteen.
		assert.Less(t, large, 8*small+100*time.Millisecond, "piece=%q", piece)
		assert.Less(t, large, 2*time.Second, "piece=%q", piece)
	}
}

func TestLyrics_ClampsLimit(t *testing.T) {
	assert.Equal(t, Lyrics("abc def", 1), Lyrics("abc def", 0))
	assert.Equal(t, Lyrics("abc def", 1), Lyrics("abc def", -7))
}

func TestSegmenter_Segment_InvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		_, err := New().Segment("text", limit)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidLimit))
	}

	lines, err := New().Segment("text", 1)
	require.NoError(t, err)
	assert.NotEmpty(t, lines)
}

func TestSegmenter_WithAbbreviations(t *testing.T) {
	text := "Capt. Hook sailed away. Lt. Smee followed him into the night."

	defaults := New().Lines(text, 20)
	assert.Contains(t, defaults, "Lt.")

	custom := New().WithAbbreviations("Capt.", "Lt").Lines(text, 20)
	assert.Equal(t, []string{
		"Capt. Hook sailed away.",
		"Lt. Smee followed",
		"him into the night.",
	}, custom)
	assert.Equal(t, stripSpace(text), stripSpace(strings.Join(custom, "")))
}

func TestSegmenter_WithCounter(t *testing.T) {
	text := "我爱你 我爱你 我爱你"

	assert.Equal(t, []string{text}, New().Lines(text, 6))

	cells := New().WithCounter(measure.NewCellCounter()).Lines(text, 6)
	assert.Equal(t, []string{"我爱你", "我爱你", "我爱你"}, cells)
}

func TestSegmenter_GraphemesNeverSplit(t *testing.T) {
	// Each "e" carries a combining accent; a rune cut could separate them.
	word := strings.Repeat("e\u0301", 30)
	lines := New().WithCounter(measure.NewGraphemeCounter()).Lines(word, 10)

	require.Len(t, lines, 3)
	assert.Equal(t, word, strings.Join(lines, ""))
	for _, line := range lines {
		assert.False(t, strings.HasPrefix(line, "\u0301"), "line starts with a combining mark")
	}
}

func TestNewThresholds(t *testing.T) {
	th := NewThresholds(20)
	assert.InDelta(t, 30.0, th.MaxLen, 1e-9)
	assert.InDelta(t, 26.0, th.ReflowLimit, 1e-9)
	assert.InDelta(t, 30.0, th.HugeAtomLimit, 1e-9)
	assert.InDelta(t, 8.0, th.EarlySplitFloor, 1e-9)
	assert.InDelta(t, 28.0, th.LateSplitCeiling, 1e-9)

	// Small limits get the absolute slack.
	assert.InDelta(t, 9.0, NewThresholds(4).MaxLen, 1e-9)
	assert.True(t, NewThresholds(4).Fits(9))
	assert.False(t, NewThresholds(4).Fits(10))
}
