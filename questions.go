package word2vec

import (
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
	"github.com/kho/stream"
)

// AnalogyQuestion is one "a b c expected" line from a questions file,
// tagged with the ": SECTION" header it fell under.
type AnalogyQuestion struct {
	Section           string
	A, B, C, Expected string
}

// questionsTop drives the line-by-line grammar with the same
// read-drive-a-callback shape as arpa.go's arpaTop/ngramSection, one
// iteratee per line rather than one big loop with nested state.
type questionsTop struct {
	out     *[]AnalogyQuestion
	section string
}

func (it *questionsTop) Final() error { return nil }

func (it *questionsTop) Next(line []byte) (stream.Iteratee, bool, error) {
	text := strings.TrimSpace(string(line))
	if text == "" {
		return it, true, nil
	}
	if strings.HasPrefix(text, ":") {
		it.section = strings.TrimSpace(text[1:])
		return it, true, nil
	}
	fields := strings.Fields(text)
	if len(fields) != 4 {
		glog.Warningf("word2vec: skipping malformed analogy line %q", text)
		return it, true, nil
	}
	*it.out = append(*it.out, AnalogyQuestion{
		Section: it.section, A: fields[0], B: fields[1], C: fields[2], Expected: fields[3],
	})
	return it, true, nil
}

// questionLineSplit is a bufio.SplitFunc-compatible line splitter. It
// neither trims nor discards blank lines: questionsTop trims each line
// and skips blank ones itself, since section headers and blank-line
// tolerance both matter for this grammar.
func questionLineSplit(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for i, b := range data {
		if b == '\n' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	if atEOF {
		return 0, nil, io.EOF
	}
	return 0, nil, nil
}

// ParseQuestions reads an analogy-questions file in the ": SECTION" /
// "a b c expected" grammar described in the data model.
func ParseQuestions(r io.Reader) ([]AnalogyQuestion, error) {
	var out []AnalogyQuestion
	top := &questionsTop{out: &out}
	if err := stream.Run(stream.EnumRead(r, questionLineSplit), top); err != nil {
		return nil, err
	}
	return out, nil
}

// AccuracyResult tallies correct/total guesses per section, mirroring
// original_source's log_accuracy per-section summary plus a running
// total.
type AccuracyResult struct {
	Section map[string]*SectionTally
	Total   SectionTally
}

type SectionTally struct {
	Correct int
	Total   int
}

// Accuracy evaluates every question against sim, restricted to the
// restrictVocab most frequent words (0 disables the restriction),
// predicting most_similar(positive=[b,c], negative=[a]) and counting
// it correct when the top (non-input) result equals expected.
// Malformed or out-of-vocabulary questions are silently skipped with
// a logged warning, per the resolved accuracy-parsing Open Question —
// this mirrors original_source's bare except/continue in accuracy().
func Accuracy(sim *SimilarityIndex, v *Vocab, questions []AnalogyQuestion, restrictVocab int) *AccuracyResult {
	res := &AccuracyResult{Section: make(map[string]*SectionTally)}
	allowed := allowedSet(v, restrictVocab)

	for _, q := range questions {
		tally := res.Section[q.Section]
		if tally == nil {
			tally = &SectionTally{}
			res.Section[q.Section] = tally
		}
		a, b, c, expected := strings.ToLower(q.A), strings.ToLower(q.B), strings.ToLower(q.C), strings.ToLower(q.Expected)
		if !inVocab(v, allowed, a) || !inVocab(v, allowed, b) || !inVocab(v, allowed, c) || !inVocab(v, allowed, expected) {
			glog.Warningf("word2vec: skipping analogy %q %q %q %q: out of restricted vocabulary", q.A, q.B, q.C, q.Expected)
			continue
		}
		results, err := sim.MostSimilar(
			[]WeightedWord{{Word: b}, {Word: c}},
			[]WeightedWord{{Word: a}},
			1,
		)
		if err != nil || len(results) == 0 {
			glog.Warningf("word2vec: skipping analogy %q %q %q %q: %v", q.A, q.B, q.C, q.Expected, err)
			continue
		}
		tally.Total++
		res.Total.Total++
		if results[0].Word == expected {
			tally.Correct++
			res.Total.Correct++
		}
	}
	return res
}

func allowedSet(v *Vocab, restrictVocab int) map[WordId]bool {
	if restrictVocab <= 0 || restrictVocab >= v.CountedLen() {
		return nil
	}
	order := orderByCountDesc(v)
	allowed := make(map[WordId]bool, restrictVocab)
	for _, id := range order[:restrictVocab] {
		allowed[id] = true
	}
	return allowed
}

func inVocab(v *Vocab, allowed map[WordId]bool, word string) bool {
	id, ok := v.IdOf(word)
	if !ok {
		return false
	}
	if allowed == nil {
		return true
	}
	return allowed[id]
}

// String renders a human-readable summary, matching the teacher's
// plain fmt.Sprintf-based report style rather than a templated report
// type.
func (r *AccuracyResult) String() string {
	var sb strings.Builder
	for section, t := range r.Section {
		fmt.Fprintf(&sb, "%s: %d/%d correct (%.1f%%)\n", section, t.Correct, t.Total, pct(t))
	}
	fmt.Fprintf(&sb, "total: %d/%d correct (%.1f%%)\n", r.Total.Correct, r.Total.Total, pct(&r.Total))
	return sb.String()
}

func pct(t *SectionTally) float64 {
	if t.Total == 0 {
		return 0
	}
	return 100 * float64(t.Correct) / float64(t.Total)
}
