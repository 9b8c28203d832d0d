package providers

import (
	"errors"
	"tarotstats/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	v.StopOnError = false
	if !v.Validate() {
		return errors.New(v.Errors.String())
	}
	if cv.conf.Ledger.RowTTL < 0 {
		return errors.New("ledger.rowTTL must not be negative")
	}
	if cv.conf.Remote.Timeout < 0 {
		return errors.New("remote.timeout must not be negative")
	}
	return nil
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}
