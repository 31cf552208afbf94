package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

var _ repository.BusinessProfileRepository = (*BusinessProfileRepo)(nil)

// BusinessProfileRepo lectura de business_profiles.
type BusinessProfileRepo struct {
	q Querier
}

func NewBusinessProfileRepository(q Querier) *BusinessProfileRepo {
	return &BusinessProfileRepo{q: q}
}

// GetByID (nil, nil) si no existe.
func (r *BusinessProfileRepo) GetByID(ctx context.Context, id string) (*entity.BusinessProfile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `
		SELECT id, name,
		       COALESCE(name_ar, ''), COALESCE(name_en, ''),
		       COALESCE(address_ar, ''), COALESCE(address_en, ''),
		       COALESCE(city_ar, ''), COALESCE(city_en, ''),
		       COALESCE(email, ''), COALESCE(phone, ''), COALESCE(website, ''), COALESCE(tax_id, ''),
		       logo, COALESCE(primary_color, ''),
		       COALESCE(bank_name, ''), COALESCE(bank_branch, ''), COALESCE(bank_account, ''),
		       COALESCE(iban, ''), COALESCE(swift, ''), COALESCE(payment_notes, ''),
		       created_at, updated_at
		FROM business_profiles WHERE id = $1`
	var p entity.BusinessProfile
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.NameAr, &p.NameEn, &p.AddressAr, &p.AddressEn, &p.CityAr, &p.CityEn,
		&p.Email, &p.Phone, &p.Website, &p.TaxID, &p.Logo, &p.PrimaryColor,
		&p.BankName, &p.BankBranch, &p.BankAccount, &p.IBAN, &p.SWIFT, &p.PaymentNotes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business profile: %w", err)
	}
	return &p, nil
}
