package inquiry

import (
	"context"
	"sync"

	"github.com/pranesta/storefront/internal/domain"
)

// Outcome messages shown next to the form itself.
const (
	ThanksMessage = "Thanks! We will reach out shortly."
	RetryMessage  = "Something went wrong. Please try again."
)

// Poster submits a contact inquiry to the backend.
type Poster interface {
	SubmitInquiry(ctx context.Context, inq domain.Inquiry) error
}

// Form holds the contact form's field state. Name, email and message are
// required by the form controls; Submit itself posts whatever it holds,
// matching the source system where only the controls enforce requiredness.
type Form struct {
	poster      Poster
	onSubmitted func()

	mu         sync.Mutex
	fields     domain.Inquiry
	status     string
	submitting bool
}

// NewForm wires the form to its backend and an optional listener invoked
// after each successful submission.
func NewForm(poster Poster, onSubmitted func()) *Form {
	return &Form{poster: poster, onSubmitted: onSubmitted}
}

func (f *Form) SetFields(inq domain.Inquiry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = inq
}

func (f *Form) Fields() domain.Inquiry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *Form) Status() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit posts the field set verbatim. While a submission is in flight
// further calls are ignored. Success resets the fields and notifies the
// listener; failure keeps the typed values so the user can retry.
func (f *Form) Submit(ctx context.Context) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return
	}
	f.submitting = true
	f.status = ""
	inq := f.fields
	f.mu.Unlock()

	err := f.poster.SubmitInquiry(ctx, inq)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.status = RetryMessage
		f.mu.Unlock()
		return
	}
	f.fields = domain.Inquiry{}
	f.status = ThanksMessage
	f.mu.Unlock()

	if f.onSubmitted != nil {
		f.onSubmitted()
	}
}
