package pgsql

import (
	"github.com/SscSPs/dealership_ledger/internal/models"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `transaction_id, transaction_type, person_id, person_name, person_type,
	amount, cash_amount, bank_amount, credit_amount, payment_method, transaction_date,
	order_number, transaction_number, related_ref, status, description, note,
	effect_cash, effect_bank, effect_credit, effect_person, emi_progress, reversed_at, reversed_by,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.PersonTransaction, error) {
	var t models.PersonTransaction
	err := row.Scan(
		&t.TransactionID, &t.TransactionType, &t.PersonID, &t.PersonName, &t.PersonType,
		&t.Amount, &t.CashAmount, &t.BankAmount, &t.CreditAmount, &t.PaymentMethod, &t.TransactionDate,
		&t.OrderNumber, &t.TransactionNumber, &t.RelatedRef, &t.Status, &t.Description, &t.Note,
		&t.EffectCash, &t.EffectBank, &t.EffectCredit, &t.EffectPerson, &t.EmiProgress, &t.ReversedAt, &t.ReversedBy,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	return t, err
}

const saleColumns = `sale_id, customer_id, vehicle_id, purchase_type, total_amount,
	down_payment, down_payment_cash, down_payment_bank, status, sale_date,
	emi_interest_rate, emi_frequency, emi_duration_months, emi_installments_count, emi_installment_amount,
	emi_next_due_date, emi_remaining_installments, emi_paid_installments,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSale(row pgx.Row) (models.VehicleSale, error) {
	var s models.VehicleSale
	err := row.Scan(
		&s.SaleID, &s.CustomerID, &s.VehicleID, &s.PurchaseType, &s.TotalAmount,
		&s.DownPayment, &s.DownPaymentCash, &s.DownPaymentBank, &s.Status, &s.SaleDate,
		&s.EmiInterestRate, &s.EmiFrequency, &s.EmiDurationMonths, &s.EmiInstallmentsCount, &s.EmiInstallmentAmount,
		&s.EmiNextDueDate, &s.EmiRemainingInstallments, &s.EmiPaidInstallments,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	return s, err
}

const productColumns = `product_id, chassis_number, brand, model, year, price, sold, purchase_ref,
	created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ProductID, &p.ChassisNumber, &p.Brand, &p.Model, &p.Year, &p.Price, &p.Sold, &p.PurchaseRef,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	return p, err
}

const purchaseColumns = `purchase_id, person_id, product_id, total_amount, cash_amount, bank_amount, credit_amount,
	attachments, purchase_date, created_at, created_by, last_updated_at, last_updated_by`

func scanPurchase(row pgx.Row) (models.Purchase, error) {
	var p models.Purchase
	err := row.Scan(
		&p.PurchaseID, &p.PersonID, &p.ProductID, &p.TotalAmount, &p.CashAmount, &p.BankAmount, &p.CreditAmount,
		&p.Attachments, &p.PurchaseDate, &p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	return p, err
}

const personColumns = `person_id, name, person_type, phone, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanPerson(row pgx.Row) (models.Person, error) {
	var p models.Person
	err := row.Scan(
		&p.PersonID, &p.Name, &p.PersonType, &p.Phone, &p.Balance,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	return p, err
}
