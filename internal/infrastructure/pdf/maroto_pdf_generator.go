// Package pdf implementa el motor de render de documentos financieros sobre Maroto v2.
//
// Layout de la página A4 (espejado en RTL):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  [barra de acento: plantilla modern]          Original/Copia │
//	│  LOGO │ Negocio + dirección + contacto │ Tipo, Nº y fechas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre + datos                                     │
//	│  TABLA: Item | Cant | Precio unit. | Importe                 │
//	│                              Subtotal / -Descuento / Imp (N%) │
//	│                              TOTAL                           │
//	│  Notas · Pagos · Datos bancarios                             │
//	│                        Página x de n                         │
//	└─────────────────────────────────────────────────────────────┘
//
// compose (puro) decide qué se muestra; este archivo solo dibuja la vista con la
// geometría de la plantilla.
package pdf

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	mentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/afero"
	"golang.org/x/crypto/blake2b"

	"github.com/jhoicas/Documentos-api/internal/application/issuance"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

const (
	arabicRegularFile = "Amiri-Regular.ttf"
	arabicBoldFile    = "Amiri-Bold.ttf"
)

// Options configuración del generador.
type Options struct {
	FontDir string   // directorio con Amiri-Regular.ttf y Amiri-Bold.ttf
	Fs      afero.Fs // nil: sistema de archivos del SO
	Log     *logger.Logger
}

var _ issuance.Renderer = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa issuance.Renderer usando Maroto v2.
// Las fuentes se cargan una sola vez; Render es seguro para uso concurrente.
type MarotoPDFGenerator struct {
	fonts  []*mentity.CustomFont
	arabic bool
	log    *logger.Logger
}

// NewMarotoPDFGenerator construye el generador. Si la fuente árabe no está disponible
// registra un aviso y los documentos en árabe se dibujan con helvetica.
func NewMarotoPDFGenerator(opts Options) *MarotoPDFGenerator {
	// pdfcpu no debe crear su directorio de configuración en el home del proceso.
	api.DisableConfigDir()

	g := &MarotoPDFGenerator{log: opts.Log}
	if g.log == nil {
		g.log = logger.Nop()
	}
	fonts, err := loadArabicFonts(opts.Fs, opts.FontDir)
	if err != nil {
		g.log.Warn().Err(err).Str("font_dir", opts.FontDir).Msg("fuente árabe no disponible, se usará helvetica")
		return g
	}
	g.fonts = fonts
	g.arabic = true
	return g
}

// ArabicFontLoaded indica si la familia árabe quedó registrada.
func (g *MarotoPDFGenerator) ArabicFontLoaded() bool { return g.arabic }

func loadArabicFonts(fs afero.Fs, dir string) ([]*mentity.CustomFont, error) {
	if dir == "" {
		return nil, errors.New("PDF_FONT_DIR no configurado")
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	regular, err := afero.ReadFile(fs, filepath.Join(dir, arabicRegularFile))
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", arabicRegularFile, err)
	}
	bold, err := afero.ReadFile(fs, filepath.Join(dir, arabicBoldFile))
	if err != nil {
		bold = regular
	}
	return repository.New().
		AddUTF8FontFromBytes(arabicFamily, fontstyle.Normal, regular).
		AddUTF8FontFromBytes(arabicFamily, fontstyle.Bold, bold).
		Load()
}

// Render genera el PDF, cuenta sus páginas y calcula el checksum.
func (g *MarotoPDFGenerator) Render(ctx context.Context, in issuance.RenderInput) (*issuance.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err := compose(in)
	if err != nil {
		return nil, err
	}
	if v.Dir.RTL && !g.arabic {
		v.Dir.Family = fontfamily.Helvetica
	}
	p := painter{v: v, accent: parseHexColor(v.Accent), arabicFont: g.arabic}

	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(v.Style.Margin).WithRightMargin(v.Style.Margin).
		WithTopMargin(v.Style.Margin).WithBottomMargin(v.Style.Margin).
		WithDefaultFont(&props.Font{Family: v.Dir.Family, Size: v.Style.BodySize}).
		WithPageNumber(props.PageNumber{
			Pattern: p.pagePattern(),
			Place:   props.Bottom,
			Family:  v.Dir.Family,
			Size:    v.Style.SmallSize,
			Color:   colorGray,
		}).
		WithTitle(v.Title+" "+v.Number, true).
		WithAuthor(v.Business.Name, true).
		WithCreationDate(in.Document.IssueDate)
	if g.arabic {
		b = b.WithCustomFonts(g.fonts)
	}

	m := maroto.New(b.Build())
	if err := m.RegisterHeader(p.watermarkRow()); err != nil {
		return nil, fmt.Errorf("pdf: registrar cabecera: %w", err)
	}
	m.AddRows(p.rows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	out := doc.GetBytes()

	pages, err := api.PageCount(bytes.NewReader(out), nil)
	if err != nil {
		return nil, fmt.Errorf("pdf: contar páginas: %w", err)
	}
	sum := blake2b.Sum256(out)
	return &issuance.Artifact{Bytes: out, Pages: pages, Checksum: hex.EncodeToString(sum[:])}, nil
}

// ── Dibujo ────────────────────────────────────────────────────────────────────

type painter struct {
	v          documentView
	accent     *props.Color
	arabicFont bool
}

// line de texto dentro de un bloque apilado.
type styledLine struct {
	s     string
	size  float64
	bold  bool
	color *props.Color
}

func (p painter) text(s string, size float64, bold bool, a align.Type, c *props.Color, top float64) core.Component {
	family := p.v.Dir.Family
	if p.arabicFont && hasArabic(s) {
		family = arabicFamily
	}
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return text.New(visual(s, p.v.Dir.RTL), props.Text{
		Family: family, Style: style, Size: size, Align: a, Color: c,
		Top: top, Left: 1.5, Right: 1.5,
	})
}

// stack apila líneas en una columna y devuelve la altura ocupada.
func (p painter) stack(lines []styledLine, a align.Type, top float64) ([]core.Component, float64) {
	comps := make([]core.Component, 0, len(lines))
	y := top
	for _, l := range lines {
		comps = append(comps, p.text(l.s, l.size, l.bold, a, l.color, y))
		h := p.v.Style.LineHeight
		if big := l.size * 0.45; big > h {
			h = big
		}
		y += h
	}
	return comps, y
}

// cols aplica el espejado RTL a las columnas de una fila.
func (p painter) cols(cs ...core.Col) []core.Col {
	return mirror(p.v.Dir.RTL, cs)
}

func (p painter) label(f field) string {
	return f.Label + ": " + f.Value
}

func (p painter) pagePattern() string {
	l := p.v.Labels
	if p.v.Dir.RTL {
		return fmt.Sprintf("{total} %s {current} %s", visual(l.PageOf, true), visual(l.PageWord, true))
	}
	return fmt.Sprintf("%s {current} %s {total}", l.PageWord, l.PageOf)
}

func (p painter) watermarkRow() core.Row {
	st := p.v.Style
	return row.New(st.LineHeight + 2).Add(col.New(12).Add(
		p.text(p.v.Watermark, st.SmallSize+1, true, p.v.Dir.End, colorGray, 0),
	))
}

func (p painter) gap() core.Row {
	st := p.v.Style
	if st.RuleWidth > 0 {
		return line.NewRow(st.SectionGap, props.Line{Color: p.accent, Thickness: st.RuleWidth})
	}
	return row.New(st.SectionGap)
}

func (p painter) rows() []core.Row {
	var rows []core.Row
	st := p.v.Style
	if st.AccentBar > 0 {
		rows = append(rows, row.New(st.AccentBar).Add(col.New(12)).WithStyle(&props.Cell{BackgroundColor: p.accent}))
		rows = append(rows, row.New(st.SectionGap))
	}
	rows = append(rows, p.header(), p.gap())
	if p.v.Client != nil {
		rows = append(rows, row.New(st.ClientGap), p.client())
	}
	rows = append(rows, row.New(st.SectionGap), p.tableHeader())
	rows = append(rows, p.itemRows()...)
	rows = append(rows, row.New(st.SectionGap))
	rows = append(rows, p.summaryRows()...)
	if p.v.Notes != "" {
		rows = append(rows, p.gap())
		rows = append(rows, p.notes()...)
	}
	if len(p.v.Payments) > 0 {
		rows = append(rows, p.gap())
		rows = append(rows, p.payments()...)
	}
	if len(p.v.Bank) > 0 {
		rows = append(rows, p.gap())
		rows = append(rows, p.bank()...)
	}
	return rows
}

// header: logo | negocio | datos del documento.
func (p painter) header() core.Row {
	st, v := p.v.Style, p.v
	infoCols := 4
	logoCols := 0
	ext, hasLogo := logoExtension(v.Logo)
	if hasLogo {
		logoCols = st.LogoCols
	}

	business := []styledLine{{s: v.Business.Name, size: st.NameSize, bold: true, color: p.accent}}
	for _, l := range v.Business.Lines {
		business = append(business, styledLine{s: l, size: st.SmallSize, color: colorGray})
	}
	for _, f := range v.Business.Fields {
		business = append(business, styledLine{s: p.label(f), size: st.SmallSize, color: colorGray})
	}
	bizComps, bizH := p.stack(business, v.Dir.Start, 1)

	info := []styledLine{{s: v.Title, size: st.TitleSize, bold: true, color: p.accent}}
	for _, f := range v.Info {
		info = append(info, styledLine{s: p.label(f), size: st.BodySize})
	}
	infoComps, infoH := p.stack(info, v.Dir.End, 1)

	height := max(st.HeaderHeight, bizH+2, infoH+2)
	cs := make([]core.Col, 0, 3)
	if hasLogo {
		cs = append(cs, col.New(logoCols).Add(image.NewFromBytes(v.Logo, ext, props.Rect{Center: true, Percent: 85})))
	}
	cs = append(cs,
		col.New(12-infoCols-logoCols).Add(bizComps...),
		col.New(infoCols).Add(infoComps...),
	)
	return row.New(height).Add(p.cols(cs...)...)
}

func (p painter) client() core.Row {
	st, c := p.v.Style, p.v.Client
	lines := []styledLine{
		{s: p.v.Labels.BillTo, size: st.SmallSize, bold: true, color: p.accent},
		{s: c.Name, size: st.BodySize + 1, bold: true},
	}
	for _, f := range c.Fields {
		lines = append(lines, styledLine{s: p.label(f), size: st.SmallSize, color: colorGray})
	}
	comps, h := p.stack(lines, p.v.Dir.Start, 1)
	r := row.New(h + 2).Add(p.cols(col.New(7).Add(comps...), col.New(5))...)
	if st.Boxed {
		r = r.WithStyle(&props.Cell{BorderType: border.Full, BorderColor: colorGray, BorderThickness: 0.2})
	}
	return r
}

// tableRow fila de 4 columnas con las proporciones de la plantilla.
func (p painter) tableRow(height float64, values [4]string, size float64, bold bool, c *props.Color) core.Row {
	st := p.v.Style
	aligns := [4]align.Type{p.v.Dir.Start, align.Center, p.v.Dir.End, p.v.Dir.End}
	cs := make([]core.Col, 0, 4)
	for i, val := range values {
		cl := col.New(st.Columns[i]).Add(p.text(val, size, bold, aligns[i], c, 1.5))
		if st.Boxed {
			cl = cl.WithStyle(&props.Cell{BorderType: border.Full, BorderColor: colorGray, BorderThickness: 0.1})
		}
		cs = append(cs, cl)
	}
	return row.New(height).Add(p.cols(cs...)...)
}

func (p painter) tableHeader() core.Row {
	st, l := p.v.Style, p.v.Labels
	values := [4]string{l.Item, l.Quantity, l.UnitRate, l.LineTotal}
	switch {
	case st.HeaderFill && st.Boxed:
		return p.tableRow(st.TableHeaderHeight, values, st.SmallSize, true, colorBlack).
			WithStyle(&props.Cell{BackgroundColor: colorLightGray})
	case st.HeaderFill:
		return p.tableRow(st.TableHeaderHeight, values, st.SmallSize, true, onAccent(p.accent)).
			WithStyle(&props.Cell{BackgroundColor: p.accent})
	default:
		return p.tableRow(st.TableHeaderHeight, values, st.BodySize, true, colorGray).
			WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: colorGray, BorderThickness: 0.3})
	}
}

func (p painter) itemRows() []core.Row {
	st := p.v.Style
	rows := make([]core.Row, 0, len(p.v.Items))
	for _, it := range p.v.Items {
		r := p.tableRow(st.ItemRowHeight, [4]string{it.Description, it.Quantity, it.UnitRate, it.LineTotal}, st.BodySize, false, nil)
		if !st.Boxed && st.RuleWidth > 0 {
			r = r.WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: colorLightGray, BorderThickness: st.RuleWidth})
		}
		rows = append(rows, r)
	}
	return rows
}

func (p painter) summaryRows() []core.Row {
	st := p.v.Style
	spacer := 12 - st.SummaryLabelCols - st.SummaryValueCols
	rows := make([]core.Row, 0, len(p.v.Summary))
	for _, s := range p.v.Summary {
		height, size, c := st.SummaryRowHeight, st.BodySize, (*props.Color)(nil)
		if s.Emphasis {
			height, size, c = st.TotalRowHeight, st.TotalSize, p.accent
		}
		labelCol := col.New(st.SummaryLabelCols).Add(p.text(s.Label, size, s.Emphasis, p.v.Dir.End, c, 1))
		valueCol := col.New(st.SummaryValueCols).Add(p.text(s.Value, size, s.Emphasis, p.v.Dir.End, c, 1))
		r := row.New(height).Add(p.cols(col.New(spacer), labelCol, valueCol)...)
		if s.Emphasis && st.Boxed {
			r = r.WithStyle(&props.Cell{BorderType: border.Top, BorderColor: colorGray, BorderThickness: 0.3})
		}
		rows = append(rows, r)
	}
	return rows
}

func (p painter) sectionTitle(s string) core.Row {
	st := p.v.Style
	return row.New(st.LineHeight + 2).Add(col.New(12).Add(
		p.text(s, st.SmallSize+1, true, p.v.Dir.Start, p.accent, 1),
	))
}

func (p painter) notes() []core.Row {
	st := p.v.Style
	return []core.Row{
		p.sectionTitle(p.v.Labels.Notes),
		row.New().Add(col.New(12).Add(p.text(p.v.Notes, st.SmallSize, false, p.v.Dir.Start, nil, 0))),
	}
}

func (p painter) payments() []core.Row {
	st, l := p.v.Style, p.v.Labels
	cell := func(s string, bold bool, a align.Type) core.Col {
		return col.New(3).Add(p.text(s, st.SmallSize, bold, a, nil, 1))
	}
	rows := []core.Row{
		p.sectionTitle(l.Payments),
		row.New(st.LineHeight + 1).Add(p.cols(
			cell(l.Method, true, p.v.Dir.Start), cell(l.PaymentDate, true, p.v.Dir.Start),
			cell(l.Reference, true, p.v.Dir.Start), cell(l.Amount, true, p.v.Dir.End),
		)...),
	}
	for _, pm := range p.v.Payments {
		rows = append(rows, row.New(st.LineHeight+1).Add(p.cols(
			cell(pm.Method, false, p.v.Dir.Start), cell(pm.Date, false, p.v.Dir.Start),
			cell(pm.Reference, false, p.v.Dir.Start), cell(pm.Amount, false, p.v.Dir.End),
		)...))
	}
	return rows
}

func (p painter) bank() []core.Row {
	st := p.v.Style
	lines := make([]styledLine, 0, len(p.v.Bank))
	for _, f := range p.v.Bank {
		lines = append(lines, styledLine{s: p.label(f), size: st.SmallSize})
	}
	comps, h := p.stack(lines, p.v.Dir.Start, 0)
	rows := []core.Row{
		p.sectionTitle(p.v.Labels.BankDetails),
		row.New(h + 1).Add(p.cols(col.New(8).Add(comps...), col.New(4))...),
	}
	if p.v.BankNotes != "" {
		rows = append(rows, row.New().Add(col.New(12).Add(p.text(p.v.BankNotes, st.SmallSize, false, p.v.Dir.Start, colorGray, 0))))
	}
	return rows
}

// logoExtension detecta PNG o JPEG; cualquier otro formato omite el logo.
func logoExtension(b []byte) (extension.Type, bool) {
	if len(b) == 0 {
		return "", false
	}
	switch http.DetectContentType(b) {
	case "image/png":
		return extension.Png, true
	case "image/jpeg":
		return extension.Jpeg, true
	default:
		return "", false
	}
}
