package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisual_LatinoSinCambios(t *testing.T) {
	assert.Equal(t, "Invoice INV-00001", visual("Invoice INV-00001", false))
	assert.Equal(t, "$1,234.00", visual("$1,234.00", true))
}

func TestShape_FormasContextuales(t *testing.T) {
	// ب ا ب: inicial, final de alef, aislada
	assert.Equal(t, string([]rune{0xFE91, 0xFE8E, 0xFE8F}), shape("باب"))
	// لا → ligadura aislada
	assert.Equal(t, string([]rune{0xFEFB}), shape("لا"))
	// سلام: inicial, lam-alef final, aislada
	assert.Equal(t, string([]rune{0xFEB3, 0xFEFC, 0xFEE1}), shape("سلام"))
}

func TestVisual_OrdenRTL(t *testing.T) {
	// Las letras se invierten; el número conserva su orden.
	out := []rune(visual("باب 2026", true))
	assert.Equal(t, "2026", string(out[:4]))
	assert.Equal(t, ' ', out[4])
	assert.Equal(t, []rune{0xFE8F, 0xFE8E, 0xFE91}, out[5:])
}

func TestVisual_ArabeEnParrafoLTR(t *testing.T) {
	out := []rune(visual("Name: باب", false))
	assert.Equal(t, "Name: ", string(out[:6]))
	assert.Equal(t, []rune{0xFE8F, 0xFE8E, 0xFE91}, out[6:])
}

func TestVisual_PorcentajeUnidoALaCifra(t *testing.T) {
	out := visual("الضريبة (18%)", true)
	assert.True(t, strings.HasPrefix(out, "(18%) "), out)

	out = visual("خصم 10%", true)
	assert.True(t, strings.HasPrefix(out, "10% "), out)

	out = visual("المبلغ ₪12.00", true)
	assert.True(t, strings.HasPrefix(out, "₪12.00 "), out)
}

func TestAttachTerminators(t *testing.T) {
	rs := []rune("% 5%%")
	dirs := []runDir{dirNeutral, dirNeutral, dirLTR, dirNeutral, dirNeutral}
	attachTerminators(rs, dirs)
	assert.Equal(t, []runDir{dirNeutral, dirNeutral, dirLTR, dirLTR, dirLTR}, dirs)
}
