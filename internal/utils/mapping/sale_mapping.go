package mapping

import (
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/models"
)

// ToModelSale converts a domain.Sale header for DB storage.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:            d.SaleID,
		MemoNo:            d.MemoNo,
		CustomerID:        d.CustomerID,
		CustomerName:      d.CustomerName,
		TotalAmount:       d.TotalAmount,
		PaidAmount:        d.PaidAmount,
		PaymentDue:        d.PaymentDue,
		AccountID:         d.AccountID,
		LegacyPaymentType: d.LegacyPaymentType,
		SaleDate:          d.SaleDate,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a models.Sale header read from the DB.
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:            m.SaleID,
		MemoNo:            m.MemoNo,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		PaymentDue:        m.PaymentDue,
		AccountID:         m.AccountID,
		LegacyPaymentType: m.LegacyPaymentType,
		SaleDate:          m.SaleDate,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSaleLines converts sale lines for DB storage.
func ToModelSaleLines(saleID string, lines []domain.SaleLine) []models.SaleLine {
	out := make([]models.SaleLine, len(lines))
	for i, l := range lines {
		out[i] = models.SaleLine{
			SaleID:    saleID,
			LineNo:    i + 1,
			ProductID: l.ProductID,
			Name:      l.Name,
			Qty:       l.Qty,
			Price:     l.Price,
			Subtotal:  l.Subtotal,
		}
	}
	return out
}

// ToDomainSaleLines converts sale lines read from the DB.
func ToDomainSaleLines(ms []models.SaleLine) []domain.SaleLine {
	out := make([]domain.SaleLine, len(ms))
	for i, m := range ms {
		out[i] = domain.SaleLine{
			ProductID: m.ProductID,
			Name:      m.Name,
			Qty:       m.Qty,
			Price:     m.Price,
			Subtotal:  m.Subtotal,
		}
	}
	return out
}
