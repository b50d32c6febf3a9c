// Package caption picks meme captions matching an emotion.
//
// Captions come from a curated corpus organised by emotion and text style,
// optionally extended with time-of-day phrases, confidence boasts and
// phrases derived from the analysis context. One caption is drawn from the
// candidate pool by weighted random sampling.
package caption

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/menta2k/moodmeme/pkg/emotion"
)

// MaxLength is the longest caption returned, in runes
const MaxLength = 50

const ellipsis = "..."

// TextStyle selects which corpus pools feed the candidate pool
type TextStyle string

// Text styles
const (
	Simple     TextStyle = "simple"
	Contextual TextStyle = "contextual"
	Trendy     TextStyle = "trendy"
	Mixed      TextStyle = "mixed"
)

// Time slots for time-of-day phrases
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
	Night     = "night"
)

// keywords earn a candidate extra weight; matching is case-sensitive
var keywords = []string{"AI", "emotion", "analysis", "mood"}

// Pools holds the captions for one emotion
type Pools struct {
	Simple     []string `json:"simple"`
	Contextual []string `json:"contextual"`
	Trendy     []string `json:"trendy"`
}

// Stats counts the captions for one emotion
type Stats struct {
	Simple     int `json:"simple"`
	Contextual int `json:"contextual"`
	Trendy     int `json:"trendy"`
	Total      int `json:"total"`
}

// Options controls caption generation
type Options struct {
	Style              TextStyle
	IncludeTimeContext bool
	IncludeEmoji       bool
	// CustomContext enables phrases based on how the emotion was detected
	CustomContext *emotion.Result
}

// DefaultOptions returns mixed-style options with time context and emoji
func DefaultOptions() Options {
	return Options{
		Style:              Mixed,
		IncludeTimeContext: true,
		IncludeEmoji:       true,
	}
}

// Selector generates captions. It is safe for concurrent use.
type Selector struct {
	mu     sync.RWMutex
	corpus map[emotion.Label]Pools
	draw   func() float64
	now    func() time.Time
}

// Option configures a Selector
type Option func(*Selector)

// WithRand sets the source of uniform [0,1) values used for selection
func WithRand(draw func() float64) Option {
	return func(s *Selector) { s.draw = draw }
}

// WithClock sets the clock used for time-of-day phrases
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// New creates a Selector over the built-in corpus
func New(opts ...Option) *Selector {
	s := &Selector{
		corpus: defaultCorpus(),
		draw:   rand.Float64,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate returns one caption for the emotion
func (s *Selector) Generate(emo emotion.Result, opts Options) string {
	pool := s.candidates(emo, opts)
	return PostProcess(SelectWeighted(pool, s.draw()), emo, opts.IncludeEmoji)
}

func (s *Selector) candidates(emo emotion.Result, opts Options) []string {
	s.mu.RLock()
	pools, ok := s.corpus[emo.Label]
	if !ok {
		pools = s.corpus[emotion.Neutral]
	}

	var pool []string
	switch opts.Style {
	case Mixed:
		pool = append(pool, pools.Simple...)
		pool = append(pool, pools.Contextual...)
		pool = append(pool, pools.Trendy...)
	case Contextual:
		pool = append(pool, pools.Contextual...)
	case Trendy:
		pool = append(pool, pools.Trendy...)
	default:
		pool = append(pool, pools.Simple...)
	}
	s.mu.RUnlock()

	if opts.IncludeTimeContext {
		pool = append(pool, timeTexts[TimeSlot(s.now())]...)
	}

	if emo.Confidence > 0.9 {
		pool = append(pool,
			fmt.Sprintf("The AI is %d%% sure about my mood! %s", int(math.Round(emo.Confidence*100)), emo.Icon),
			fmt.Sprintf("A perfect %s face! 🎯", strings.ToLower(emo.Description)),
			"Emotion analysis accuracy: MAX! 📊",
		)
	}

	if opts.CustomContext != nil {
		pool = append(pool, contextTexts(emo, *opts.CustomContext)...)
	}

	return pool
}

// contextTexts builds phrases from how the context emotion was detected
func contextTexts(emo emotion.Result, ctx emotion.Result) []string {
	var texts []string

	if ctx.FaceDetected {
		texts = append(texts,
			fmt.Sprintf("The AI analyzed my face perfectly! %s", emo.Icon),
			fmt.Sprintf("Face found! Emotion: %s", emo.Description),
			"Face scan complete! Mood check ✅",
		)
	} else {
		texts = append(texts,
			fmt.Sprintf("I can feel the emotion in this photo! %s", emo.Icon),
			"Read the emotion pixel by pixel!",
			"Image analysis read my mind! 🔍",
		)
	}

	if data := ctx.AnalysisData; data != nil {
		if data.Brightness > 150 {
			texts = append(texts, "That bright face is glowing! ✨")
		} else if data.Brightness < 100 {
			texts = append(texts, "A calm, low-key look 🌙")
		}

		if data.Warmth > 0.1 {
			texts = append(texts, "Such a warm feeling! 🔥")
		} else if data.Warmth < -0.1 {
			texts = append(texts, "Feeling a cool vibe! ❄️")
		}
	}

	return texts
}

// TimeSlot names the part of the day for t
func TimeSlot(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 22:
		return Evening
	default:
		return Night
	}
}

// Weight scores a candidate caption for selection
func Weight(text string) float64 {
	weight := 1.0
	if ContainsEmoji(text) {
		weight += 0.5
	}
	if utf8.RuneCountInString(text) < 20 {
		weight += 0.3
	}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			weight += 0.4
			break
		}
	}
	return weight
}

// SelectWeighted picks one caption with probability proportional to its
// Weight. u is a uniform draw in [0,1). An empty pool yields "".
func SelectWeighted(pool []string, u float64) string {
	if len(pool) == 0 {
		return ""
	}

	weights := make([]float64, len(pool))
	var total float64
	for i, text := range pool {
		weights[i] = Weight(text)
		total += weights[i]
	}

	r := u * total
	for i, text := range pool {
		r -= weights[i]
		if r <= 0 {
			return text
		}
	}

	// u at or above 1 can overshoot the scan
	return pool[len(pool)-1]
}

// PostProcess applies the emoji option and the length cap
func PostProcess(text string, emo emotion.Result, includeEmoji bool) string {
	if !includeEmoji {
		text = StripEmoji(text)
	} else if !ContainsEmoji(text) && emo.Icon != "" {
		text += " " + emo.Icon
	}
	return Truncate(text, MaxLength)
}

// Truncate caps text at limit runes, ending with an ellipsis when cut.
// The result never ends a kept prefix with a zero-width joiner or a
// variation selector.
func Truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	keep := limit - utf8.RuneCountInString(ellipsis)
	if keep < 0 {
		keep = 0
	}
	kept := []rune(text)[:keep]
	// A cut inside a composed emoji leaves a dangling joiner or selector
	for len(kept) > 0 && isJoiner(kept[len(kept)-1]) {
		kept = kept[:len(kept)-1]
	}
	return string(kept) + ellipsis
}

// AllTexts returns a copy of the corpus pools for a label. Unknown labels
// return the neutral pools.
func (s *Selector) AllTexts(l emotion.Label) Pools {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pools, ok := s.corpus[l]
	if !ok {
		pools = s.corpus[emotion.Neutral]
	}
	return Pools{
		Simple:     append([]string(nil), pools.Simple...),
		Contextual: append([]string(nil), pools.Contextual...),
		Trendy:     append([]string(nil), pools.Trendy...),
	}
}

// AddCustomText adds a caption to the corpus. Mixed and unknown styles
// add to the simple pool.
func (s *Selector) AddCustomText(l emotion.Label, text string, style TextStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pools := s.corpus[l]
	switch style {
	case Contextual:
		pools.Contextual = append(pools.Contextual, text)
	case Trendy:
		pools.Trendy = append(pools.Trendy, text)
	default:
		pools.Simple = append(pools.Simple, text)
	}
	s.corpus[l] = pools
}

// Stats counts the corpus captions per label
func (s *Selector) Stats() map[emotion.Label]Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[emotion.Label]Stats, len(s.corpus))
	for l, pools := range s.corpus {
		st := Stats{
			Simple:     len(pools.Simple),
			Contextual: len(pools.Contextual),
			Trendy:     len(pools.Trendy),
		}
		st.Total = st.Simple + st.Contextual + st.Trendy
		stats[l] = st
	}
	return stats
}
