package mapping

import (
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/models"
)

// ToModelSupplier converts a domain.Supplier for DB storage.
func ToModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID:       d.SupplierID,
		Name:             d.Name,
		Phone:            d.Phone,
		Email:            d.Email,
		Address:          d.Address,
		TotalPurchase:    d.TotalPurchase,
		TotalDue:         d.TotalDue,
		LastPurchaseDate: d.LastPurchaseDate,
		LastPaymentDate:  d.LastPaymentDate,
		SuppliedProducts: d.SuppliedProducts,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSupplier converts a models.Supplier read from the DB.
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:       m.SupplierID,
		Name:             m.Name,
		Phone:            m.Phone,
		Email:            m.Email,
		Address:          m.Address,
		TotalPurchase:    m.TotalPurchase,
		TotalDue:         m.TotalDue,
		LastPurchaseDate: m.LastPurchaseDate,
		LastPaymentDate:  m.LastPaymentDate,
		SuppliedProducts: m.SuppliedProducts,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomer converts a domain.Customer for DB storage.
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:        d.CustomerID,
		Name:              d.Name,
		Phone:             d.Phone,
		Email:             d.Email,
		Address:           d.Address,
		TotalSales:        d.TotalSales,
		TotalDue:          d.TotalDue,
		LastSaleDate:      d.LastSaleDate,
		LastPaymentDate:   d.LastPaymentDate,
		PurchasedProducts: d.PurchasedProducts,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a models.Customer read from the DB.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:        m.CustomerID,
		Name:              m.Name,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		TotalSales:        m.TotalSales,
		TotalDue:          m.TotalDue,
		LastSaleDate:      m.LastSaleDate,
		LastPaymentDate:   m.LastPaymentDate,
		PurchasedProducts: m.PurchasedProducts,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCounterpartyEvent converts a history entry for DB storage.
func ToModelCounterpartyEvent(d domain.CounterpartyEvent) models.CounterpartyEvent {
	return models.CounterpartyEvent{
		EventID:        d.EventID,
		CounterpartyID: d.CounterpartyID,
		Date:           d.Date,
		Type:           string(d.Type),
		ReferenceID:    d.ReferenceID,
		Amount:         d.Amount,
		PaidAmount:     d.PaidAmount,
		DueAmount:      d.DueAmount,
		Remarks:        d.Remarks,
	}
}

// ToDomainCounterpartyEvent converts a history entry read from the DB.
func ToDomainCounterpartyEvent(m models.CounterpartyEvent) domain.CounterpartyEvent {
	return domain.CounterpartyEvent{
		EventID:        m.EventID,
		CounterpartyID: m.CounterpartyID,
		Date:           m.Date,
		Type:           domain.CounterpartyEventType(m.Type),
		ReferenceID:    m.ReferenceID,
		Amount:         m.Amount,
		PaidAmount:     m.PaidAmount,
		DueAmount:      m.DueAmount,
		Remarks:        m.Remarks,
	}
}
