package mapping

import (
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/models"
)

// ToModelTransaction converts a domain.Transaction for DB storage.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		EntrySource:     string(d.EntrySource),
		TransactionType: models.TransactionType(d.TransactionType),
		Amount:          d.Amount,
		BalanceAfter:    d.BalanceAfter,
		Particulars:     d.Particulars,
		ReferenceID:     d.ReferenceID,
		PaymentDetails:  d.PaymentDetails,
		OccurredAt:      d.OccurredAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a models.Transaction read from the DB.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		EntrySource:     domain.EntrySource(m.EntrySource),
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		BalanceAfter:    m.BalanceAfter,
		Particulars:     m.Particulars,
		ReferenceID:     m.ReferenceID,
		PaymentDetails:  m.PaymentDetails,
		OccurredAt:      m.OccurredAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
