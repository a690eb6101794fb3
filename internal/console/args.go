package console

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

var errUnterminatedQuote = errors.New("niezamknięty cudzysłów")

// args to sparsowana linia polecenia: nazwa, argumenty pozycyjne i pary klucz=wartość.
type args struct {
	cmd string
	pos []string
	kv  map[string]string
}

// parseLine dzieli linię po białych znakach; fragmenty w "..." albo '...' są jednym słowem
// (supplier="Acme Foods"). Klucze w parach klucz=wartość są bez rozróżniania wielkości liter.
func parseLine(line string) (args, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return args{}, err
	}
	a := args{kv: map[string]string{}}
	if len(tokens) == 0 {
		return a, nil
	}
	a.cmd = strings.ToLower(tokens[0].text)
	for _, tok := range tokens[1:] {
		if k, v, ok := strings.Cut(tok.text, "="); ok && tok.bareKey && isKey(k) {
			a.kv[strings.ToLower(k)] = v
			continue
		}
		a.pos = append(a.pos, tok.text)
	}
	return a, nil
}

type token struct {
	text string
	// bareKey: część przed pierwszym '=' nie była w cudzysłowie
	bareKey bool
}

func tokenize(line string) ([]token, error) {
	var (
		out     []token
		cur     strings.Builder
		inWord  bool
		quote   rune
		bareKey = true
	)
	flush := func() {
		if inWord {
			out = append(out, token{text: cur.String(), bareKey: bareKey})
		}
		cur.Reset()
		inWord, bareKey = false, true
	}

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			if !strings.Contains(cur.String(), "=") {
				bareKey = false
			}
			quote, inWord = r, true
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	flush()
	return out, nil
}

func isKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// float czyta liczbę z pary klucz=wartość; brak klucza to 0.
func (a args) float(key string) (float64, error) {
	v := strings.TrimSpace(a.kv[key])
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return 0, errors.New(key + ": must be a number")
	}
	return f, nil
}
