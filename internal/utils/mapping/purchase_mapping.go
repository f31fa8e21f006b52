package mapping

import (
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/models"
)

// ToModelPurchase converts a domain.Purchase header for DB storage.
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:        d.PurchaseID,
		SupplierID:        d.SupplierID,
		TotalAmount:       d.TotalAmount,
		PaidAmount:        d.PaidAmount,
		PaymentDue:        d.PaymentDue,
		AccountID:         d.AccountID,
		LegacyPaymentType: d.LegacyPaymentType,
		PurchaseDate:      d.PurchaseDate,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a models.Purchase header read from the DB.
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:        m.PurchaseID,
		SupplierID:        m.SupplierID,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		PaymentDue:        m.PaymentDue,
		AccountID:         m.AccountID,
		LegacyPaymentType: m.LegacyPaymentType,
		PurchaseDate:      m.PurchaseDate,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPurchaseLines converts purchase lines for DB storage.
func ToModelPurchaseLines(purchaseID string, lines []domain.PurchaseLine) []models.PurchaseLine {
	out := make([]models.PurchaseLine, len(lines))
	for i, l := range lines {
		out[i] = models.PurchaseLine{
			PurchaseID:    purchaseID,
			LineNo:        i + 1,
			ProductID:     l.ProductID,
			Name:          l.Name,
			Qty:           l.Qty,
			PurchasePrice: l.PurchasePrice,
			Subtotal:      l.Subtotal,
		}
	}
	return out
}

// ToDomainPurchaseLines converts purchase lines read from the DB.
func ToDomainPurchaseLines(ms []models.PurchaseLine) []domain.PurchaseLine {
	out := make([]domain.PurchaseLine, len(ms))
	for i, m := range ms {
		out[i] = domain.PurchaseLine{
			ProductID:     m.ProductID,
			Name:          m.Name,
			Qty:           m.Qty,
			PurchasePrice: m.PurchasePrice,
			Subtotal:      m.Subtotal,
		}
	}
	return out
}
