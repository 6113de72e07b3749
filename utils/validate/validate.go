package validate

import (
	"errors"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type Validate struct {
	validate *validator.Validate
	trans    ut.Translator
}

// InitValidates sets up the validator with the default messages of local.
func (v *Validate) InitValidates(localTrans locales.Translator, local string) error {
	uni := ut.New(localTrans, localTrans)
	v.trans, _ = uni.GetTranslator(local)

	v.validate = validator.New()
	return en_translations.RegisterDefaultTranslations(v.validate, v.trans)
}

// HandleError validates r and returns the first failure. m overrides the
// message of a "Field.tag" pair.
func (v *Validate) HandleError(r interface{}, m map[string]string) error {
	err := v.validate.Struct(r)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	for _, e := range errs {
		if msg, ok := m[e.Field()+"."+e.Tag()]; ok {
			return errors.New(msg)
		}
		return errors.New(e.Translate(v.trans))
	}
	return nil
}

func New(r interface{}, m map[string]string, localTrans locales.Translator, local string) error {
	v := Validate{}
	if err := v.InitValidates(localTrans, local); err != nil {
		return err
	}
	return v.HandleError(r, m)
}

// Run validates r with English messages.
func Run(r interface{}, m map[string]string) error {
	return New(r, m, en.New(), "en")
}
