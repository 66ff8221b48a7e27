package handler

import (
	"fmt"
	"sync"
	"time"

	"paroquia_connect/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by the request models:
// isodate (YYYY-MM-DD), clock (HH:MM or HH:MM:SS) and capacitymode.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
			return
		}
		for tag, fn := range map[string]validator.Func{
			"isodate":      isISODate,
			"clock":        isClock,
			"capacitymode": isCapacityMode,
		} {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func isClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, layout := range []string{"15:04", time.TimeOnly} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isCapacityMode(fl validator.FieldLevel) bool {
	_, ok := model.NormalizeCapacityMode(fl.Field().String())
	return ok
}
