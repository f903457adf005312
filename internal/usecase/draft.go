package usecase

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"catalog_ui/internal/currency"
	"catalog_ui/internal/domain"
)

// Messages shown to the user.
const (
	MsgRequiredFields  = "Todos os campos são obrigatórios."
	MsgCreateFailed    = "Erro ao cadastrar produto."
	MsgCreated         = "Produto cadastrado com sucesso!"
	MsgUpdateFailed    = "Erro ao atualizar produto."
	MsgInvalidPrice    = "Preço acima do valor máximo permitido."
	MsgInvalidQuantity = "Quantidade acima do valor máximo permitido."
)

// ErrRequiredFields is returned when a draft misses a field. A zero price or a zero
// quantity counts as missing, so a product cannot be registered for free or with no stock.
var ErrRequiredFields = errors.New(MsgRequiredFields)

var (
	ErrInvalidPrice    = errors.New(MsgInvalidPrice)
	ErrInvalidQuantity = errors.New(MsgInvalidQuantity)
)

var quantityPattern = regexp.MustCompile(`^[0-9]*$`)

// FormInput holds the raw values of a product form.
type FormInput struct {
	Name       string
	Price      string // formatted currency text, e.g. "R$ 19,90"
	Quantity   string
	CategoryID int
}

func inputFromProduct(p domain.Product) FormInput {
	return FormInput{
		Name:       p.Name,
		Price:      currency.FormatCents(currency.ToCents(p.Price)),
		Quantity:   strconv.Itoa(p.Quantity),
		CategoryID: p.CategoryID,
	}
}

func (in FormInput) isEmpty() bool {
	return in == FormInput{}
}

// withPrice re-renders raw keystrokes as a currency string. Amounts too large to
// represent are kept as typed so Draft can reject them.
func (in FormInput) withPrice(raw string) FormInput {
	if !currency.Fits(raw) {
		in.Price = raw
		return in
	}
	in.Price = currency.FormatDigits(raw)
	return in
}

// withQuantity accepts digits-only input; anything else leaves the value unchanged.
func (in FormInput) withQuantity(raw string) (FormInput, bool) {
	if !quantityPattern.MatchString(raw) {
		return in, false
	}
	in.Quantity = raw
	return in, true
}

// Draft validates the input and converts it into the API body.
func (in FormInput) Draft() (domain.ProductDraft, error) {
	name := strings.TrimSpace(in.Name)
	cents := currency.Cents(in.Price)
	if name == "" || in.CategoryID <= 0 || cents <= 0 || in.Quantity == "" {
		return domain.ProductDraft{}, ErrRequiredFields
	}
	if !currency.Fits(in.Price) {
		return domain.ProductDraft{}, ErrInvalidPrice
	}
	quantity, err := strconv.Atoi(in.Quantity)
	if err != nil {
		return domain.ProductDraft{}, ErrInvalidQuantity
	}
	if quantity <= 0 {
		return domain.ProductDraft{}, ErrRequiredFields
	}
	return domain.ProductDraft{
		Name:       name,
		Price:      float64(cents) / 100,
		CategoryID: in.CategoryID,
		Quantity:   quantity,
	}, nil
}
