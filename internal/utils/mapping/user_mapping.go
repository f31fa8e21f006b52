package mapping

import (
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/models"
)

// ToModelUser converts a domain.User for DB storage.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a models.User read from the DB.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelProduct converts a domain.Product for DB storage.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		Name:        d.Name,
		CategoryID:  d.CategoryID,
		SalePrice:   d.SalePrice,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a models.Product read from the DB.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		CategoryID:  m.CategoryID,
		SalePrice:   m.SalePrice,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
