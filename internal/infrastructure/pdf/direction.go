package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// arabicFamily familia registrada con las fuentes de PDF_FONT_DIR.
const arabicFamily = "amiri"

// direction dirección del texto y familia tipográfica, función solo del idioma.
type direction struct {
	RTL    bool
	Family string
	Start  align.Type // alineación del texto corrido
	End    align.Type // alineación de importes
}

func directionFor(lang entity.Language) direction {
	if lang == entity.LanguageArabic {
		return direction{RTL: true, Family: arabicFamily, Start: align.Right, End: align.Left}
	}
	return direction{Family: fontfamily.Helvetica, Start: align.Left, End: align.Right}
}

// mirror invierte el orden de las columnas de una fila en RTL.
func mirror[T any](rtl bool, cols []T) []T {
	if !rtl {
		return cols
	}
	out := make([]T, len(cols))
	for i, c := range cols {
		out[len(cols)-1-i] = c
	}
	return out
}
