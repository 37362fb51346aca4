// assets/embed.go
//
// Embedded default word lists.
//   - answers.txt:    possible secret words.
//   - probes.txt:     extra legal guesses (the standard probe list).
//   - alt-probes.txt: extra legal guesses (the alternate probe list).
//
// The probe lists are small defaults: a couple of hundred extra guesses, not
// the full ~10k legal-guess list the "tares" opener was tuned against. Point
// WORDS_PROBES_FILE / WORDS_ALT_PROBES_FILE at full lists for real play.
//
// Blank lines and lines starting with '#' are ignored; words are lowercased.
// Length and alphabet checks belong to the words package.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed answers.txt probes.txt alt-probes.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

func ProbesList() ([]string, error) {
	return readLines("probes.txt")
}

func AltProbesList() ([]string, error) {
	return readLines("alt-probes.txt")
}
