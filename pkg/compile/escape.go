package compile

import "strings"

var escapes = map[rune]string{
	'&':  `\&`,
	'%':  `\%`,
	'$':  `\$`,
	'#':  `\#`,
	'_':  `\_`,
	'{':  `\{`,
	'}':  `\}`,
	'~':  `\texttt{\~{}}`,
	'^':  `\^{}`,
	'\\': `$\backslash$`,
}

// Escape makes s safe to use as LaTeX text. It is applied to headings only;
// code listings go through minted verbatim.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if e, ok := escapes[r]; ok {
			b.WriteString(e)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
