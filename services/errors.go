package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Controllers map these onto HTTP statuses; everything the
// services return wraps exactly one of them.
var (
	ErrValidation   = errors.New("richiesta non valida")
	ErrDuplicate    = errors.New("risorsa duplicata")
	ErrUnauthorized = errors.New("non autorizzato")
	ErrForbidden    = errors.New("operazione non consentita")
	ErrNotFound     = errors.New("risorsa non trovata")
)

type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }
func (e *serviceError) Unwrap() error { return e.kind }

// errore builds an error of the given kind carrying a user-facing message.
func errore(kind error, format string, args ...interface{}) error {
	return &serviceError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// seDuplicato maps the database's unique-violation error onto ErrDuplicate
// with the given message. The check-then-create paths need it for the
// insert that loses a concurrent race; any other error passes through.
func seDuplicato(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errore(ErrDuplicate, "%s", msg)
	}
	return err
}
