package pdf

import (
	"fmt"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// Style geometría de una plantilla. Alturas en mm, tamaños de fuente en pt.
// El código de dibujo no tiene geometría propia: todo sale de aquí.
type Style struct {
	Template entity.TemplateID

	Margin float64

	// Cabecera: logo + negocio + datos del documento.
	AccentBar    float64 // barra superior de color; 0 = sin barra
	HeaderHeight float64
	LogoCols     int
	TitleSize    float64
	NameSize     float64

	// Bloques de texto.
	BodySize   float64
	SmallSize  float64
	LineHeight float64 // separación vertical entre líneas de un bloque
	ClientGap  float64 // espacio antes del bloque del cliente

	// Tabla de líneas: item | cantidad | precio | importe. Suma 12.
	Columns           [4]int
	TableHeaderHeight float64
	ItemRowHeight     float64
	HeaderFill        bool // fondo de color en la cabecera de la tabla
	Boxed             bool // bordes completos en bloques y celdas

	// Resumen.
	SummaryLabelCols int
	SummaryValueCols int
	SummaryRowHeight float64
	TotalSize        float64
	TotalRowHeight   float64

	SectionGap float64
	RuleWidth  float64 // grosor de las líneas separadoras; 0 = sin separadores
}

// styleFor selecciona la geometría de la plantilla.
func styleFor(t entity.TemplateID) (Style, error) {
	switch t {
	case entity.TemplateClassic:
		return classic, nil
	case entity.TemplateModern:
		return modern, nil
	case entity.TemplateMinimal:
		return minimal, nil
	default:
		return Style{}, domain.Invalid("template_id", fmt.Sprintf("plantilla desconocida %q", t))
	}
}

var classic = Style{
	Template:          entity.TemplateClassic,
	Margin:            12,
	HeaderHeight:      34,
	LogoCols:          2,
	TitleSize:         15,
	NameSize:          12,
	BodySize:          9,
	SmallSize:         8,
	LineHeight:        4.5,
	ClientGap:         4,
	Columns:           [4]int{6, 2, 2, 2},
	TableHeaderHeight: 8,
	ItemRowHeight:     7,
	HeaderFill:        true,
	Boxed:             true,
	SummaryLabelCols:  3,
	SummaryValueCols:  3,
	SummaryRowHeight:  6,
	TotalSize:         11,
	TotalRowHeight:    8,
	SectionGap:        4,
	RuleWidth:         0.4,
}

var modern = Style{
	Template:          entity.TemplateModern,
	Margin:            10,
	AccentBar:         5,
	HeaderHeight:      38,
	LogoCols:          3,
	TitleSize:         20,
	NameSize:          13,
	BodySize:          9,
	SmallSize:         8,
	LineHeight:        4.5,
	ClientGap:         6,
	Columns:           [4]int{6, 1, 2, 3},
	TableHeaderHeight: 9,
	ItemRowHeight:     7,
	HeaderFill:        true,
	SummaryLabelCols:  3,
	SummaryValueCols:  3,
	SummaryRowHeight:  6,
	TotalSize:         13,
	TotalRowHeight:    10,
	SectionGap:        5,
	RuleWidth:         0.2,
}

var minimal = Style{
	Template:          entity.TemplateMinimal,
	Margin:            16,
	HeaderHeight:      44,
	LogoCols:          2,
	TitleSize:         26,
	NameSize:          14,
	BodySize:          11,
	SmallSize:         9,
	LineHeight:        5.5,
	ClientGap:         8,
	Columns:           [4]int{6, 2, 2, 2},
	TableHeaderHeight: 9,
	ItemRowHeight:     8,
	SummaryLabelCols:  3,
	SummaryValueCols:  3,
	SummaryRowHeight:  7,
	TotalSize:         16,
	TotalRowHeight:    11,
	SectionGap:        8,
}
