package usecase

import (
	"context"

	"catalog_ui/internal/domain"

	"github.com/sirupsen/logrus"
)

type FormState int

const (
	FormEmpty FormState = iota
	FormEditing
	FormSubmitting
)

func (s FormState) String() string {
	switch s {
	case FormEmpty:
		return "empty"
	case FormEditing:
		return "editing"
	case FormSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// RegistrationSnapshot is what the page renders for the form.
type RegistrationSnapshot struct {
	Input  FormInput
	State  FormState
	Error  string
	Notice string
}

// RegistrationForm is the state behind the product registration form. It is not safe
// for concurrent use; callers serialize access per user session.
type RegistrationForm struct {
	catalog  domain.Catalog
	notifier *MutationNotifier
	log      *logrus.Logger

	input  FormInput
	state  FormState
	errMsg string
	notice string
}

func NewRegistrationForm(catalog domain.Catalog, notifier *MutationNotifier, logger *logrus.Logger) *RegistrationForm {
	return &RegistrationForm{
		catalog:  catalog,
		notifier: notifier,
		log:      logger,
	}
}

func (f *RegistrationForm) SetName(name string) {
	f.input.Name = name
	f.touch()
}

// SetPrice keeps only the digits of raw and re-renders them as currency.
func (f *RegistrationForm) SetPrice(raw string) {
	f.input = f.input.withPrice(raw)
	f.touch()
}

// SetQuantity accepts digits only. It reports whether raw was accepted.
func (f *RegistrationForm) SetQuantity(raw string) bool {
	var ok bool
	f.input, ok = f.input.withQuantity(raw)
	f.touch()
	return ok
}

func (f *RegistrationForm) SetCategory(id int) {
	f.input.CategoryID = id
	f.touch()
}

func (f *RegistrationForm) touch() {
	f.notice = ""
	if f.input.isEmpty() {
		f.state = FormEmpty
		return
	}
	f.state = FormEditing
}

// Submit validates the form and creates the product. It reports whether the product
// was created; on failure the inputs are kept for a retry.
func (f *RegistrationForm) Submit(ctx context.Context) bool {
	f.notice = ""
	draft, err := f.input.Draft()
	if err != nil {
		f.log.Debugf("RegistrationForm: Rejected submit: %v", err)
		f.errMsg = err.Error()
		return false
	}

	f.state = FormSubmitting
	created := f.catalog.CreateProduct(ctx, draft)
	if created == nil {
		f.state = FormEditing
		f.errMsg = MsgCreateFailed
		return false
	}

	f.log.Infof("RegistrationForm: Product '%s' registered with ID %d", created.Name, created.ID)
	f.input = FormInput{}
	f.state = FormEmpty
	f.errMsg = ""
	f.notice = MsgCreated
	f.notifier.Publish(ctx, Mutation{Kind: MutationCreated, ProductID: created.ID})
	return true
}

// ClearNotice drops the success notice once it has been shown.
func (f *RegistrationForm) ClearNotice() {
	f.notice = ""
}

func (f *RegistrationForm) State() FormState {
	return f.state
}

func (f *RegistrationForm) Snapshot() RegistrationSnapshot {
	return RegistrationSnapshot{
		Input:  f.input,
		State:  f.state,
		Error:  f.errMsg,
		Notice: f.notice,
	}
}
