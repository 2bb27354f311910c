// Package validator 提供 gin 的自定义参数校验器
package validator

import (
	"reflect"
	"sync"

	val "github.com/go-playground/validator/v10"
)

// CustomValidator implements gin binding.StructValidator
// CustomValidator 实现 gin 的 binding.StructValidator
type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if reflect.ValueOf(obj).Kind() == reflect.Struct ||
		(reflect.ValueOf(obj).Kind() == reflect.Ptr && reflect.ValueOf(obj).Elem().Kind() == reflect.Struct) {
		v.lazyinit()
		if err := v.validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
	})
}
