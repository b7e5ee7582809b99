package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	"github.com/SscSPs/dealership_ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelPersonTransaction converts a domain PersonTransaction to its row form.
func ToModelPersonTransaction(d domain.PersonTransaction) (models.PersonTransaction, error) {
	m := models.PersonTransaction{
		TransactionID:     d.TransactionID,
		TransactionType:   string(d.Type),
		PersonID:          d.PersonID,
		PersonName:        d.PersonName,
		PersonType:        string(d.PersonType),
		Amount:            d.Amount,
		CashAmount:        d.CashAmount,
		BankAmount:        d.BankAmount,
		CreditAmount:      d.CreditAmount,
		PaymentMethod:     string(d.PaymentMethod),
		TransactionDate:   d.TransactionDate,
		OrderNumber:       d.OrderNumber,
		TransactionNumber: d.TransactionNumber,
		RelatedRef:        d.RelatedRef,
		Status:            string(d.Status),
		Description:       d.Description,
		Note:              d.Note,
		EffectCash:        d.Effects.Cash,
		EffectBank:        d.Effects.Bank,
		EffectCredit:      d.Effects.Credit,
		EffectPerson:      d.Effects.Person,
		ReversedAt:        d.ReversedAt,
		ReversedBy:        nullableString(d.ReversedBy),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.EmiProgress != nil {
		raw, err := json.Marshal(d.EmiProgress)
		if err != nil {
			return models.PersonTransaction{}, fmt.Errorf("encode emi progress of %s: %w", d.TransactionID, err)
		}
		m.EmiProgress = raw
	}
	return m, nil
}

// ToDomainPersonTransaction converts a person_transactions row to the domain type.
func ToDomainPersonTransaction(m models.PersonTransaction) (domain.PersonTransaction, error) {
	d := domain.PersonTransaction{
		TransactionID:     m.TransactionID,
		Type:              domain.TransactionType(m.TransactionType),
		PersonID:          m.PersonID,
		PersonName:        m.PersonName,
		PersonType:        domain.PersonType(m.PersonType),
		Amount:            m.Amount,
		CashAmount:        m.CashAmount,
		BankAmount:        m.BankAmount,
		CreditAmount:      m.CreditAmount,
		PaymentMethod:     domain.PaymentMethod(m.PaymentMethod),
		TransactionDate:   m.TransactionDate,
		OrderNumber:       m.OrderNumber,
		TransactionNumber: m.TransactionNumber,
		RelatedRef:        m.RelatedRef,
		Status:            domain.TransactionStatus(m.Status),
		Description:       m.Description,
		Note:              m.Note,
		Effects: domain.BalanceEffects{
			Cash:   m.EffectCash,
			Bank:   m.EffectBank,
			Credit: m.EffectCredit,
			Person: m.EffectPerson,
		},
		ReversedAt:  m.ReversedAt,
		ReversedBy:  derefString(m.ReversedBy),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if len(m.EmiProgress) > 0 {
		var snap domain.EmiProgressSnapshot
		if err := json.Unmarshal(m.EmiProgress, &snap); err != nil {
			return domain.PersonTransaction{}, fmt.Errorf("decode emi progress of %s: %w", m.TransactionID, err)
		}
		d.EmiProgress = &snap
	}
	return d, nil
}

func int32Ptr(v int) *int32 {
	i := int32(v)
	return &i
}

func derefInt(v *int32) int {
	if v == nil {
		return 0
	}
	return int(*v)
}

// ToModelVehicleSale flattens the optional EMI plan into nullable columns.
func ToModelVehicleSale(d domain.VehicleSale) models.VehicleSale {
	m := models.VehicleSale{
		SaleID:          d.SaleID,
		CustomerID:      d.CustomerID,
		VehicleID:       d.VehicleID,
		PurchaseType:    string(d.PurchaseType),
		TotalAmount:     d.TotalAmount,
		DownPayment:     d.DownPayment,
		DownPaymentCash: d.DownPaymentCash,
		DownPaymentBank: d.DownPaymentBank,
		Status:          string(d.Status),
		SaleDate:        d.SaleDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if e := d.Emi; e != nil {
		freq := string(e.Frequency)
		due := e.NextDueDate
		m.EmiInterestRate = decimal.NewNullDecimal(e.InterestRate)
		m.EmiFrequency = &freq
		m.EmiDurationMonths = int32Ptr(e.DurationMonths)
		m.EmiInstallmentsCount = int32Ptr(e.InstallmentsCount)
		m.EmiInstallmentAmount = decimal.NewNullDecimal(e.InstallmentAmount)
		m.EmiNextDueDate = &due
		m.EmiRemainingInstallments = int32Ptr(e.RemainingInstallments)
		m.EmiPaidInstallments = int32Ptr(e.PaidInstallments)
	}
	return m
}

// ToDomainVehicleSale rebuilds the EMI plan when its columns are present.
func ToDomainVehicleSale(m models.VehicleSale) domain.VehicleSale {
	d := domain.VehicleSale{
		SaleID:          m.SaleID,
		CustomerID:      m.CustomerID,
		VehicleID:       m.VehicleID,
		PurchaseType:    domain.PurchaseType(m.PurchaseType),
		TotalAmount:     m.TotalAmount,
		DownPayment:     m.DownPayment,
		DownPaymentCash: m.DownPaymentCash,
		DownPaymentBank: m.DownPaymentBank,
		Status:          domain.SaleStatus(m.Status),
		SaleDate:        m.SaleDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.EmiFrequency != nil {
		emi := &domain.EmiDetails{
			InterestRate:          m.EmiInterestRate.Decimal,
			Frequency:             domain.EmiFrequency(*m.EmiFrequency),
			DurationMonths:        derefInt(m.EmiDurationMonths),
			InstallmentsCount:     derefInt(m.EmiInstallmentsCount),
			InstallmentAmount:     m.EmiInstallmentAmount.Decimal,
			RemainingInstallments: derefInt(m.EmiRemainingInstallments),
			PaidInstallments:      derefInt(m.EmiPaidInstallments),
		}
		if m.EmiNextDueDate != nil {
			emi.NextDueDate = *m.EmiNextDueDate
		}
		d.Emi = emi
	}
	return d
}

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:     d.ProductID,
		ChassisNumber: d.ChassisNumber,
		Brand:         d.Brand,
		Model:         d.Model,
		Year:          int32(d.Year),
		Price:         d.Price,
		Sold:          d.Sold,
		PurchaseRef:   nullableString(d.PurchaseRef),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:     m.ProductID,
		ChassisNumber: m.ChassisNumber,
		Brand:         m.Brand,
		Model:         m.Model,
		Year:          int(m.Year),
		Price:         m.Price,
		Sold:          m.Sold,
		PurchaseRef:   derefString(m.PurchaseRef),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPurchase converts a domain Purchase to a model Purchase
func ToModelPurchase(d domain.Purchase) models.Purchase {
	attachments := d.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return models.Purchase{
		PurchaseID:   d.PurchaseID,
		PersonID:     d.PersonID,
		ProductID:    d.ProductID,
		TotalAmount:  d.TotalAmount,
		CashAmount:   d.CashAmount,
		BankAmount:   d.BankAmount,
		CreditAmount: d.CreditAmount,
		Attachments:  attachments,
		PurchaseDate: d.PurchaseDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a model Purchase to a domain Purchase
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	var attachments []string
	if len(m.Attachments) > 0 {
		attachments = m.Attachments
	}
	return domain.Purchase{
		PurchaseID:   m.PurchaseID,
		PersonID:     m.PersonID,
		ProductID:    m.ProductID,
		TotalAmount:  m.TotalAmount,
		CashAmount:   m.CashAmount,
		BankAmount:   m.BankAmount,
		CreditAmount: m.CreditAmount,
		Attachments:  attachments,
		PurchaseDate: m.PurchaseDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPerson converts a model Person to a domain Person
// ToModelPerson converts a domain person to its row.
func ToModelPerson(d domain.Person) models.Person {
	return models.Person{
		PersonID:    d.PersonID,
		Name:        d.Name,
		PersonType:  string(d.Type),
		Phone:       nullableString(d.Phone),
		Balance:     d.Balance,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPerson(m models.Person) domain.Person {
	return domain.Person{
		PersonID:    m.PersonID,
		Name:        m.Name,
		Type:        domain.PersonType(m.PersonType),
		Phone:       derefString(m.Phone),
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCapitalBalance converts a model CapitalBalance to a domain CapitalBalance
func ToDomainCapitalBalance(m models.CapitalBalance) domain.CapitalBalance {
	return domain.CapitalBalance{
		Type:          domain.CapitalType(m.CapitalType),
		Balance:       m.Balance,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToModelCapitalAdjustment converts a domain CapitalAdjustment to a model CapitalAdjustment
func ToModelCapitalAdjustment(d domain.CapitalAdjustment) models.CapitalAdjustment {
	return models.CapitalAdjustment{
		AdjustmentID:   d.AdjustmentID,
		CapitalType:    string(d.Type),
		Delta:          d.Delta,
		Reason:         string(d.Reason),
		TransactionRef: nullableString(d.TransactionRef),
		Note:           nullableString(d.Note),
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainCapitalAdjustment converts a model CapitalAdjustment to a domain CapitalAdjustment
func ToDomainCapitalAdjustment(m models.CapitalAdjustment) domain.CapitalAdjustment {
	return domain.CapitalAdjustment{
		AdjustmentID:   m.AdjustmentID,
		Type:           domain.CapitalType(m.CapitalType),
		Delta:          m.Delta,
		Reason:         domain.AdjustmentReason(m.Reason),
		TransactionRef: derefString(m.TransactionRef),
		Note:           derefString(m.Note),
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}
