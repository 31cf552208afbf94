package pdf

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// gofpdf dibuja los runes en orden lógico, de izquierda a derecha y sin shaping.
// visual convierte un texto a formas de presentación árabes y a orden visual
// para que el PDF lo muestre correctamente. Textos sin árabe no cambian.

// forms formas contextuales: aislada, final, inicial, medial (0 = no existe).
type forms [4]rune

var arabicForms = map[rune]forms{
	0x0621: {0xFE80, 0, 0, 0},
	0x0622: {0xFE81, 0xFE82, 0, 0},
	0x0623: {0xFE83, 0xFE84, 0, 0},
	0x0624: {0xFE85, 0xFE86, 0, 0},
	0x0625: {0xFE87, 0xFE88, 0, 0},
	0x0626: {0xFE89, 0xFE8A, 0xFE8B, 0xFE8C},
	0x0627: {0xFE8D, 0xFE8E, 0, 0},
	0x0628: {0xFE8F, 0xFE90, 0xFE91, 0xFE92},
	0x0629: {0xFE93, 0xFE94, 0, 0},
	0x062A: {0xFE95, 0xFE96, 0xFE97, 0xFE98},
	0x062B: {0xFE99, 0xFE9A, 0xFE9B, 0xFE9C},
	0x062C: {0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0},
	0x062D: {0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4},
	0x062E: {0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8},
	0x062F: {0xFEA9, 0xFEAA, 0, 0},
	0x0630: {0xFEAB, 0xFEAC, 0, 0},
	0x0631: {0xFEAD, 0xFEAE, 0, 0},
	0x0632: {0xFEAF, 0xFEB0, 0, 0},
	0x0633: {0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4},
	0x0634: {0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8},
	0x0635: {0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC},
	0x0636: {0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0},
	0x0637: {0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4},
	0x0638: {0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8},
	0x0639: {0xFEC9, 0xFECA, 0xFECB, 0xFECC},
	0x063A: {0xFECD, 0xFECE, 0xFECF, 0xFED0},
	0x0641: {0xFED1, 0xFED2, 0xFED3, 0xFED4},
	0x0642: {0xFED5, 0xFED6, 0xFED7, 0xFED8},
	0x0643: {0xFED9, 0xFEDA, 0xFEDB, 0xFEDC},
	0x0644: {0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0},
	0x0645: {0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4},
	0x0646: {0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8},
	0x0647: {0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC},
	0x0648: {0xFEED, 0xFEEE, 0, 0},
	0x0649: {0xFEEF, 0xFEF0, 0, 0},
	0x064A: {0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4},
}

// Ligaduras lam-alef: aislada, final.
var lamAlef = map[rune][2]rune{
	0x0622: {0xFEF5, 0xFEF6},
	0x0623: {0xFEF7, 0xFEF8},
	0x0625: {0xFEF9, 0xFEFA},
	0x0627: {0xFEFB, 0xFEFC},
}

const (
	lam     = 0x0644
	tatweel = 0x0640
)

func isArabic(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) || (r >= 0xFB50 && r <= 0xFDFF) || (r >= 0xFE70 && r <= 0xFEFF)
}

func hasArabic(s string) bool {
	return strings.IndexFunc(s, isArabic) >= 0
}

// Diacríticos: no participan en la unión de letras.
func isTransparent(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670
}

// joinsLeft la letra puede unirse con la siguiente (formas inicial/medial).
func joinsLeft(r rune) bool {
	if r == tatweel {
		return true
	}
	f, ok := arabicForms[r]
	return ok && f[2] != 0
}

func joinsRight(r rune) bool {
	if r == tatweel {
		return true
	}
	_, ok := arabicForms[r]
	return ok
}

// shape sustituye cada letra por su forma contextual. Trabaja en orden lógico.
func shape(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in))

	neighbour := func(i, step int) rune {
		for j := i + step; j >= 0 && j < len(in); j += step {
			if !isTransparent(in[j]) {
				return in[j]
			}
		}
		return 0
	}

	for i := 0; i < len(in); i++ {
		r := in[i]
		f, ok := arabicForms[r]
		if !ok {
			out = append(out, r)
			continue
		}
		prev, next := neighbour(i, -1), neighbour(i, 1)
		fromPrev := joinsLeft(prev)

		if r == lam {
			if lig, ok := lamAlef[next]; ok {
				if fromPrev {
					out = append(out, lig[1])
				} else {
					out = append(out, lig[0])
				}
				// salta los diacríticos intermedios y el alef
				for i++; i < len(in) && isTransparent(in[i]); i++ {
					out = append(out, in[i])
				}
				continue
			}
		}

		toNext := f[2] != 0 && joinsRight(next)
		switch {
		case fromPrev && toNext:
			out = append(out, f[3])
		case fromPrev && f[1] != 0:
			out = append(out, f[1])
		case toNext:
			out = append(out, f[2])
		default:
			out = append(out, f[0])
		}
	}
	return string(out)
}

type runDir int8

const (
	dirNeutral runDir = iota
	dirLTR
	dirRTL
)

func classify(r rune) runDir {
	p, _ := bidi.LookupRune(r)
	switch p.Class() {
	case bidi.R, bidi.AL:
		return dirRTL
	case bidi.L, bidi.EN, bidi.AN:
		return dirLTR
	default:
		return dirNeutral
	}
}

// attachTerminators une %, signos de moneda y demás terminadores europeos (ET) a la cifra
// contigua, como la regla W5: "18%" se mantiene como un solo tramo LTR.
func attachTerminators(rs []rune, dirs []runDir) {
	for i := 0; i < len(rs); {
		if !hasClass(rs[i], bidi.ET) {
			i++
			continue
		}
		j := i
		for j < len(rs) && hasClass(rs[j], bidi.ET) {
			j++
		}
		if (i > 0 && hasClass(rs[i-1], bidi.EN)) || (j < len(rs) && hasClass(rs[j], bidi.EN)) {
			for k := i; k < j; k++ {
				dirs[k] = dirLTR
			}
		}
		i = j
	}
}

func hasClass(r rune, c bidi.Class) bool {
	p, _ := bidi.LookupRune(r)
	return p.Class() == c
}

var mirrored = map[rune]rune{'(': ')', ')': '(', '[': ']', ']': '[', '{': '}', '}': '{', '<': '>', '>': '<'}

// visual devuelve s en orden visual (izquierda a derecha) con el árabe ya unido.
// rtl indica la dirección base del párrafo. Los números y el texto latino conservan su orden.
func visual(s string, rtl bool) string {
	if !hasArabic(s) {
		return s
	}
	rs := []rune(shape(s))
	dirs := make([]runDir, len(rs))
	for i, r := range rs {
		dirs[i] = classify(r)
	}
	attachTerminators(rs, dirs)

	base := dirLTR
	if rtl {
		base = dirRTL
	}
	// Neutros: toman la dirección de sus vecinos fuertes si coinciden; si no, la base.
	for i := range dirs {
		if dirs[i] != dirNeutral {
			continue
		}
		prev, next := base, base
		for j := i - 1; j >= 0; j-- {
			if dirs[j] != dirNeutral {
				prev = dirs[j]
				break
			}
		}
		for j := i + 1; j < len(dirs); j++ {
			if dirs[j] != dirNeutral {
				next = dirs[j]
				break
			}
		}
		if prev == next {
			dirs[i] = prev
		} else {
			dirs[i] = base
		}
	}

	type run struct {
		dir   runDir
		runes []rune
	}
	var runs []run
	for i, r := range rs {
		if len(runs) == 0 || runs[len(runs)-1].dir != dirs[i] {
			runs = append(runs, run{dir: dirs[i]})
		}
		runs[len(runs)-1].runes = append(runs[len(runs)-1].runes, r)
	}

	if rtl {
		for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
		}
	}

	var b strings.Builder
	for _, rn := range runs {
		if rn.dir != dirRTL {
			b.WriteString(string(rn.runes))
			continue
		}
		for i := len(rn.runes) - 1; i >= 0; i-- {
			r := rn.runes[i]
			if m, ok := mirrored[r]; ok {
				r = m
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
