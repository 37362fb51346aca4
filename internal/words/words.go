// internal/words/words.go
//
// Lexicon: the fixed word lists the solver works from.
//
// Responsibilities:
//   - Load answer and probe lists from files or fall back to the embedded defaults.
//   - Normalize entries (lowercase, exactly 5 letters a–z) and drop duplicates.
//   - Build the probe lists: answers first, then extra probe words, sorted,
//     with anything already listed as an answer removed.
//   - Answer lookups used by the solver and the setter (IsAnswer, IsProbe, RandomAnswer).
//
// Word Lists:
//   - "answers":    possible secret words.
//   - "probes":     legal guesses; always begins with the answers.
//   - "alt probes": an alternate legal-guess list, built the same way.
//
// Loading behavior (Load):
//   1. If AnswersFile and ProbesFile are both set, load answers from the first
//      and extra probes from the second.
//   2. If only ProbesFile is set, use that file for both answers and probes.
//   3. Otherwise use the embedded lists from the assets package.
//   AltProbesFile overrides the alternate list in every case. Without it, the
//   embedded alternate list is used in case 3 and the probe list otherwise.
//
// A Lexicon is immutable after construction and safe to share between solvers.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// Sources names optional word-list files. Empty fields fall back as described above.
type Sources struct {
	AnswersFile   string
	ProbesFile    string
	AltProbesFile string
}

// Lexicon holds the answer list and the two probe lists.
type Lexicon struct {
	answers   []Word
	probes    []Word
	altProbes []Word

	answerSet map[Word]struct{}
	probeSet  map[Word]struct{}
	altSet    map[Word]struct{}
}

// New builds a Lexicon from raw lists. Invalid entries are skipped.
// A nil altProbes reuses probes for the alternate list.
// Returns an error if no valid answers remain.
func New(answers, probes, altProbes []string) (*Lexicon, error) {
	l := &Lexicon{answers: dedupe(normalize(answers))}
	if len(l.answers) == 0 {
		return nil, errors.New("words: answers list is empty")
	}
	l.answerSet = toSet(l.answers)

	l.probes = l.withAnswers(normalize(probes))
	if altProbes == nil {
		l.altProbes = l.probes
	} else {
		l.altProbes = l.withAnswers(normalize(altProbes))
	}
	l.probeSet = toSet(l.probes)
	l.altSet = toSet(l.altProbes)
	return l, nil
}

// Embedded builds a Lexicon from the lists compiled into the binary.
func Embedded() (*Lexicon, error) {
	ans, err := assets.AnswersList()
	if err != nil {
		return nil, fmt.Errorf("read embedded answers: %w", err)
	}
	probes, err := assets.ProbesList()
	if err != nil {
		return nil, fmt.Errorf("read embedded probes: %w", err)
	}
	alt, err := assets.AltProbesList()
	if err != nil {
		return nil, fmt.Errorf("read embedded alt probes: %w", err)
	}
	return New(ans, probes, alt)
}

// Load builds a Lexicon from the configured files, falling back to the embedded lists.
func Load(src Sources) (*Lexicon, error) {
	var ansList, probeList, altList []string
	var err error

	switch {
	// Case 1: both lists provided
	case src.AnswersFile != "" && src.ProbesFile != "":
		if ansList, err = readWordFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if probeList, err = readWordFile(src.ProbesFile); err != nil {
			return nil, err
		}

	// Case 2: only the probe file provided → use for both
	case src.AnswersFile == "" && src.ProbesFile != "":
		if probeList, err = readWordFile(src.ProbesFile); err != nil {
			return nil, err
		}
		ansList = probeList

	// Case 3: embedded defaults
	default:
		if src.AltProbesFile == "" {
			return Embedded()
		}
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, err
		}
		if probeList, err = assets.ProbesList(); err != nil {
			return nil, err
		}
	}

	if src.AltProbesFile != "" {
		if altList, err = readWordFile(src.AltProbesFile); err != nil {
			return nil, err
		}
	}
	return New(ansList, probeList, altList)
}

// readWordFile loads one word per line from a file.
// Normalization happens in New.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// normalize lowercases and trims each entry, keeping only valid 5-letter words.
func normalize(list []string) []Word {
	out := make([]Word, 0, len(list))
	for _, s := range list {
		if strings.HasPrefix(strings.TrimSpace(s), "#") {
			continue
		}
		if w, err := Parse(s); err == nil {
			out = append(out, w)
		}
	}
	return out
}

// dedupe drops repeated words, keeping the first occurrence.
func dedupe(list []Word) []Word {
	seen := make(map[Word]struct{}, len(list))
	out := list[:0]
	for _, w := range list {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// withAnswers returns the answers followed by the sorted extras not already answers.
func (l *Lexicon) withAnswers(extra []Word) []Word {
	rest := make([]Word, 0, len(extra))
	for _, w := range extra {
		if _, ok := l.answerSet[w]; !ok {
			rest = append(rest, w)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].String() < rest[j].String() })
	rest = dedupe(rest)

	out := make([]Word, 0, len(l.answers)+len(rest))
	out = append(out, l.answers...)
	return append(out, rest...)
}

// toSet converts a list of words into a lookup set.
func toSet(list []Word) map[Word]struct{} {
	m := make(map[Word]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// Answers returns a copy of the answer list.
func (l *Lexicon) Answers() []Word {
	return append([]Word(nil), l.answers...)
}

// Probes returns a copy of the standard or alternate probe list.
func (l *Lexicon) Probes(alternate bool) []Word {
	if alternate {
		return append([]Word(nil), l.altProbes...)
	}
	return append([]Word(nil), l.probes...)
}

// IsAnswer reports whether w is an answer word.
func (l *Lexicon) IsAnswer(w Word) bool {
	_, ok := l.answerSet[w]
	return ok
}

// IsProbe reports whether w is a legal guess in the selected probe list.
func (l *Lexicon) IsProbe(w Word, alternate bool) bool {
	set := l.probeSet
	if alternate {
		set = l.altSet
	}
	_, ok := set[w]
	return ok
}

// Lookup parses s and checks it against the selected probe list
// (or the answers when answersOnly is set).
func (l *Lexicon) Lookup(s string, answersOnly, alternate bool) (Word, error) {
	w, err := Parse(s)
	if err != nil {
		return w, err
	}
	ok := l.IsProbe(w, alternate)
	if answersOnly {
		ok = l.IsAnswer(w)
	}
	if !ok {
		return w, fmt.Errorf("%q: %w", w.String(), ErrUnknownWord)
	}
	return w, nil
}

// RandomAnswer returns a cryptographically random answer.
func (l *Lexicon) RandomAnswer() Word {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// Stats returns counts of loaded words: (answers, probes, alternate probes).
func (l *Lexicon) Stats() (answers, probes, altProbes int) {
	return len(l.answers), len(l.probes), len(l.altProbes)
}
