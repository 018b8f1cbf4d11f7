// internal/domain/details.go
package domain

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"gold-ledger/internal/util"
)

// Valuation is the signed ledger delta computed from a business event, plus
// the informational snapshot fields copied onto the row.
type Valuation struct {
	MoneyAmount     decimal.Decimal
	GoldAmountGrams decimal.Decimal
	BankAccountID   *int64
	ItemID          *int64
	Price           decimal.NullDecimal
	WeightGrams     decimal.NullDecimal
	Purity          decimal.NullDecimal
}

// ValuationRefs carries the entities a variant references, resolved by the
// caller before valuation. Jewelry variants require Jewelry to be set; the
// snapshot of its current weight*purity is frozen into the delta here.
type ValuationRefs struct {
	Jewelry *JewelryItem
}

// TransactionDetails is the closed set of payloads for the eight transaction
// types. Each variant computes its own deltas, so the sign table lives next
// to the payload it applies to and the compiler checks the set is complete.
type TransactionDetails interface {
	Type() TransactionType
	Valuate(refs ValuationRefs) (Valuation, error)
}

// SellRawGoldDetails: the customer sells raw gold to the business.
// Money flows in (+price), gold flows out to the customer's credit (-weight).
type SellRawGoldDetails struct {
	Purity      decimal.Decimal `json:"purity" validate:"required,gt=0,lte=1"`
	WeightGrams decimal.Decimal `json:"weight_grams" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
}

func (d SellRawGoldDetails) Type() TransactionType { return TypeSellRawGold }

func (d SellRawGoldDetails) Valuate(ValuationRefs) (Valuation, error) {
	return Valuation{
		MoneyAmount:     d.Price,
		GoldAmountGrams: d.WeightGrams.Neg(),
		Price:           decimal.NewNullDecimal(d.Price),
		WeightGrams:     decimal.NewNullDecimal(d.WeightGrams),
		Purity:          decimal.NewNullDecimal(d.Purity),
	}, nil
}

// BuyRawGoldDetails: the customer buys raw gold from the business.
type BuyRawGoldDetails struct {
	Purity      decimal.Decimal `json:"purity" validate:"required,gt=0,lte=1"`
	WeightGrams decimal.Decimal `json:"weight_grams" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
}

func (d BuyRawGoldDetails) Type() TransactionType { return TypeBuyRawGold }

func (d BuyRawGoldDetails) Valuate(ValuationRefs) (Valuation, error) {
	return Valuation{
		MoneyAmount:     d.Price.Neg(),
		GoldAmountGrams: d.WeightGrams,
		Price:           decimal.NewNullDecimal(d.Price),
		WeightGrams:     decimal.NewNullDecimal(d.WeightGrams),
		Purity:          decimal.NewNullDecimal(d.Purity),
	}, nil
}

// ReceiveMoneyDetails: money arrives into one of the business's bank accounts.
type ReceiveMoneyDetails struct {
	Amount        decimal.Decimal `json:"amount" validate:"required,gt=0"`
	BankAccountID int64           `json:"bank_account_id" validate:"required,gt=0"`
}

func (d ReceiveMoneyDetails) Type() TransactionType { return TypeReceiveMoney }

func (d ReceiveMoneyDetails) Valuate(ValuationRefs) (Valuation, error) {
	id := d.BankAccountID
	return Valuation{
		MoneyAmount:   d.Amount,
		BankAccountID: &id,
	}, nil
}

// SendMoneyDetails: money leaves one of the business's bank accounts.
type SendMoneyDetails struct {
	Amount        decimal.Decimal `json:"amount" validate:"required,gt=0"`
	BankAccountID int64           `json:"bank_account_id" validate:"required,gt=0"`
}

func (d SendMoneyDetails) Type() TransactionType { return TypeSendMoney }

func (d SendMoneyDetails) Valuate(ValuationRefs) (Valuation, error) {
	id := d.BankAccountID
	return Valuation{
		MoneyAmount:   d.Amount.Neg(),
		BankAccountID: &id,
	}, nil
}

// ReceiveRawGoldDetails: raw gold handed over with no payment.
type ReceiveRawGoldDetails struct {
	WeightGrams decimal.Decimal `json:"weight_grams" validate:"required,gt=0"`
	Purity      decimal.Decimal `json:"purity" validate:"required,gt=0,lte=1"`
}

func (d ReceiveRawGoldDetails) Type() TransactionType { return TypeReceiveRawGold }

func (d ReceiveRawGoldDetails) Valuate(ValuationRefs) (Valuation, error) {
	return Valuation{
		GoldAmountGrams: d.WeightGrams,
		WeightGrams:     decimal.NewNullDecimal(d.WeightGrams),
		Purity:          decimal.NewNullDecimal(d.Purity),
	}, nil
}

// GiveRawGoldDetails: raw gold handed out with no payment.
type GiveRawGoldDetails struct {
	WeightGrams decimal.Decimal `json:"weight_grams" validate:"required,gt=0"`
	Purity      decimal.Decimal `json:"purity" validate:"required,gt=0,lte=1"`
}

func (d GiveRawGoldDetails) Type() TransactionType { return TypeGiveRawGold }

func (d GiveRawGoldDetails) Valuate(ValuationRefs) (Valuation, error) {
	return Valuation{
		GoldAmountGrams: d.WeightGrams.Neg(),
		WeightGrams:     decimal.NewNullDecimal(d.WeightGrams),
		Purity:          decimal.NewNullDecimal(d.Purity),
	}, nil
}

// ReceiveJewelryDetails: a catalogued jewelry unit received on consignment.
// The delta is the item's fine-gold content as catalogued at this moment.
type ReceiveJewelryDetails struct {
	JewelryCode string `json:"jewelry_code" validate:"required"`
}

func (d ReceiveJewelryDetails) Type() TransactionType { return TypeReceiveJewelry }

func (d ReceiveJewelryDetails) Valuate(refs ValuationRefs) (Valuation, error) {
	if refs.Jewelry == nil {
		return Valuation{}, util.ErrJewelryNotFound
	}
	id := refs.Jewelry.ID
	return Valuation{
		GoldAmountGrams: refs.Jewelry.PureGoldGrams(),
		ItemID:          &id,
	}, nil
}

// GiveJewelryDetails: a catalogued jewelry unit handed back out.
type GiveJewelryDetails struct {
	JewelryCode string `json:"jewelry_code" validate:"required"`
}

func (d GiveJewelryDetails) Type() TransactionType { return TypeGiveJewelry }

func (d GiveJewelryDetails) Valuate(refs ValuationRefs) (Valuation, error) {
	if refs.Jewelry == nil {
		return Valuation{}, util.ErrJewelryNotFound
	}
	id := refs.Jewelry.ID
	return Valuation{
		GoldAmountGrams: refs.Jewelry.PureGoldGrams().Neg(),
		ItemID:          &id,
	}, nil
}

// JewelryCoded is implemented by the variants that reference a catalog item.
type JewelryCoded interface {
	Code() string
}

func (d ReceiveJewelryDetails) Code() string { return d.JewelryCode }
func (d GiveJewelryDetails) Code() string    { return d.JewelryCode }

// BankRouted is implemented by the variants that move money through a bank
// account, so the caller can validate the account exists before valuation.
type BankRouted interface {
	BankAccount() int64
}

func (d ReceiveMoneyDetails) BankAccount() int64 { return d.BankAccountID }
func (d SendMoneyDetails) BankAccount() int64    { return d.BankAccountID }

// validate is shared by both backends; decimals are validated as float64 so
// the gt/lte tags apply to the numeric value.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidateDetails checks the payload shape for its declared variant.
// Failures are caller-correctable input errors.
func ValidateDetails(d TransactionDetails) error {
	if d == nil {
		return fmt.Errorf("%w: missing details", util.ErrInvalidPayload)
	}
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s", util.ErrInvalidPayload, detailMessage(d.Type(), err))
	}
	return nil
}

func detailMessage(t TransactionType, err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return fmt.Sprintf("invalid details for %s: field %s failed on '%s'", t, verrs[0].Field(), verrs[0].Tag())
	}
	return fmt.Sprintf("invalid details for %s", t)
}

// ParseDetails decodes a raw JSON payload into the strongly-typed details
// struct for the declared transaction type and validates its shape.
func ParseDetails(txType TransactionType, raw json.RawMessage) (TransactionDetails, error) {
	var d TransactionDetails
	switch txType {
	case TypeSellRawGold:
		d = &SellRawGoldDetails{}
	case TypeBuyRawGold:
		d = &BuyRawGoldDetails{}
	case TypeReceiveMoney:
		d = &ReceiveMoneyDetails{}
	case TypeSendMoney:
		d = &SendMoneyDetails{}
	case TypeReceiveRawGold:
		d = &ReceiveRawGoldDetails{}
	case TypeGiveRawGold:
		d = &GiveRawGoldDetails{}
	case TypeReceiveJewelry:
		d = &ReceiveJewelryDetails{}
	case TypeGiveJewelry:
		d = &GiveJewelryDetails{}
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", util.ErrInvalidPayload, txType)
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("%w: invalid details for %s: %v", util.ErrInvalidPayload, txType, err)
	}
	details := deref(d)
	if err := ValidateDetails(details); err != nil {
		return nil, err
	}
	return details, nil
}

// deref returns the value form so valuation methods work on copies.
func deref(d TransactionDetails) TransactionDetails {
	switch v := d.(type) {
	case *SellRawGoldDetails:
		return *v
	case *BuyRawGoldDetails:
		return *v
	case *ReceiveMoneyDetails:
		return *v
	case *SendMoneyDetails:
		return *v
	case *ReceiveRawGoldDetails:
		return *v
	case *GiveRawGoldDetails:
		return *v
	case *ReceiveJewelryDetails:
		return *v
	case *GiveJewelryDetails:
		return *v
	default:
		return d
	}
}
