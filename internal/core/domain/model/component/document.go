package component

import (
	"errors"
	"strings"
	"time"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

// ErrDocumentIsNotConstructed is returned when a Document was not created via NewDocument.
var ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument constructor")

// Document is the transport-document (DDT) metadata attached to shipment and
// treatment-return transitions.
type Document struct {
	number string
	date   time.Time
	guard  guard.ConstructorGuard
}

// NewDocument validates and builds a Document. The number is trimmed and must
// not be empty; the date must be set.
func NewDocument(number string, date time.Time) (Document, error) {
	doc := Document{guard: guard.NewConstructorGuard()}

	number = strings.TrimSpace(number)
	var numberErr, dateErr error
	if number == "" {
		numberErr = errs.NewValueIsRequiredError("document number")
	}
	if date.IsZero() {
		dateErr = errs.NewValueIsRequiredError("document date")
	}
	if err := errors.Join(numberErr, dateErr); err != nil {
		return Document{}, err
	}

	doc.number = number
	doc.date = date
	return doc, nil
}

// Validate ensures the document was built by NewDocument.
func (d Document) Validate() error {
	return d.guard.Validate(ErrDocumentIsNotConstructed)
}

// Number returns the document number.
func (d Document) Number() string {
	return d.number
}

// Date returns the document date.
func (d Document) Date() time.Time {
	return d.date
}
