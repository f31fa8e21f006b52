package mapping

import (
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/models"
)

// ToModelAccount converts a domain.Account for DB storage.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		AccountType:   models.AccountType(d.AccountType),
		Name:          d.Name,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		Method:        d.Method,
		OwnerName:     d.OwnerName,
		Balance:       d.Balance,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a models.Account read from the DB.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		AccountType:   domain.AccountType(m.AccountType),
		Name:          m.Name,
		BankName:      m.BankName,
		AccountNumber: m.AccountNumber,
		Method:        m.Method,
		OwnerName:     m.OwnerName,
		Balance:       m.Balance,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
