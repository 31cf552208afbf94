package documents

import (
	"fmt"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// NumberPrefix prefijo del consecutivo por tipo de documento.
func NumberPrefix(t entity.DocumentType) string {
	switch t {
	case entity.TypeInvoice:
		return "INV"
	case entity.TypeReceipt:
		return "REC"
	case entity.TypeInvoiceReceipt:
		return "IR"
	case entity.TypeCreditNote:
		return "CN"
	case entity.TypePriceOffer:
		return "PO"
	case entity.TypeProformaInvoice:
		return "PF"
	case entity.TypeDonationReceipt:
		return "DR"
	default:
		return "DOC"
	}
}

// FormatNumber ej. INV-00042.
func FormatNumber(t entity.DocumentType, seq int64) string {
	return fmt.Sprintf("%s-%05d", NumberPrefix(t), seq)
}
