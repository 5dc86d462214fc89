package svgparse

// scanner is a cursor over an attribute value,
// shared by the number list, transform and path data grammars.
type scanner struct {
	src string
	pos int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

func (sc *scanner) eof() bool { return sc.pos >= len(sc.src) }

func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.src[sc.pos]
}

func (sc *scanner) skipSpaces() {
	for !sc.eof() && isSpace(sc.src[sc.pos]) {
		sc.pos++
	}
}

// skipSeparator skips white spaces and at most one comma
func (sc *scanner) skipSeparator() {
	sc.skipSpaces()
	if sc.peek() == ',' {
		sc.pos++
		sc.skipSpaces()
	}
}

// numberEnd returns the end of the number starting at `start`,
// or `start` if there is none.
// Accepted syntax is [+-]? (digits [. digits?] | . digits) ([eE] [+-]? digits)?
func numberEnd(s string, start int) int {
	i := start
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return start
	}
	// exponent, only consumed if followed by digits, so that units like "em" are preserved
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

// number reads the next number, without skipping leading spaces.
func (sc *scanner) number() (float64, bool) {
	end := numberEnd(sc.src, sc.pos)
	if end == sc.pos {
		return 0, false
	}
	f, err := parseBasicFloat(sc.src[sc.pos:end])
	if err != nil {
		return 0, false
	}
	sc.pos = end
	return f, true
}

// flag reads a single '0' or '1' as used by the arc command,
// which may not be separated from the next value.
func (sc *scanner) flag() (bool, bool) {
	switch sc.peek() {
	case '0':
		sc.pos++
		return false, true
	case '1':
		sc.pos++
		return true, true
	}
	return false, false
}
