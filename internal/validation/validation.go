package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator"

	"github.com/altinukshini/dnafinder/internal/logger"
	"github.com/altinukshini/dnafinder/internal/model"
)

const MinPatternLength = 3

var (
	ErrFileRequired     = errors.New("a CSV file is required")
	ErrNotCSV           = errors.New("only .csv files are allowed")
	ErrInvalidPattern   = errors.New("invalid pattern (only A, C, G, T; minimum 3)")
	ErrUnknownAlgorithm = errors.New("unknown algorithm (kmp or rabin_karp)")
)

var dnaPattern = regexp.MustCompile(`^[ACGTacgt]+$`)

// ValidPattern reports whether p is a DNA pattern the backend will accept.
func ValidPattern(p string) bool {
	return len(p) >= MinPatternLength && dnaPattern.MatchString(p)
}

// IsCSVFile checks the file name only; contents are the backend's concern.
func IsCSVFile(name string) bool {
	return strings.HasSuffix(filepath.Base(name), ".csv")
}

// FieldError is returned by Validate; it names the offending field and
// unwraps to one of the Err* values above where one applies.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// SearchInput is what the search form submits. Field order is the order
// problems are reported in.
type SearchInput struct {
	FilePath  string          `json:"file" validate:"required,csv_file"`
	Pattern   string          `json:"pattern" validate:"dna_pattern"`
	Algorithm model.Algorithm `json:"algorithm" validate:"algorithm"`
}

type Validator struct {
	validator                *validator.Validate
	logger                   logger.Logger
	tagValidationDetailsOnce sync.Once
	tagValidationDetailsMap  map[string]tagValidationDetails
}

type tagValidationDetails struct {
	validatorFunc validator.Func
	err           error
}

func New(log logger.Logger) (*Validator, error) {
	v := &Validator{validator: validator.New(), logger: log}
	v.validator.RegisterTagNameFunc(useJSONFieldNames)
	if err := v.registerCustomValidatorsForTags(); err != nil {
		return nil, err
	}
	return v, nil
}

// MustNew is New for callers with no way to recover from a bad tag table.
func MustNew(log logger.Logger) *Validator {
	v, err := New(log)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate returns the first problem found in i as a user-facing error.
func (v *Validator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}
	v.logger.Debug("validation failed", "err", err.Error())

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}
	first := validationErrs[0]

	if details, ok := v.getTagValidationDetails()[first.Tag()]; ok {
		return &FieldError{Field: first.Field(), Err: details.err}
	}

	switch first.Tag() {
	case "required":
		if first.Field() == "file" {
			return &FieldError{Field: first.Field(), Err: ErrFileRequired}
		}
		return &FieldError{Field: first.Field(), Err: fmt.Errorf("missing required field '%s'", first.Field())}
	}
	return &FieldError{Field: first.Field(), Err: err}
}

func (v *Validator) getTagValidationDetails() map[string]tagValidationDetails {
	v.tagValidationDetailsOnce.Do(func() {
		v.tagValidationDetailsMap = map[string]tagValidationDetails{
			"csv_file":    {validatorFunc: isCSVFile, err: ErrNotCSV},
			"dna_pattern": {validatorFunc: isDNAPattern, err: ErrInvalidPattern},
			"algorithm":   {validatorFunc: isAlgorithm, err: ErrUnknownAlgorithm},
		}
	})
	return v.tagValidationDetailsMap
}

func (v *Validator) registerCustomValidatorsForTags() error {
	for tag, details := range v.getTagValidationDetails() {
		if err := v.validator.RegisterValidation(tag, details.validatorFunc); err != nil {
			v.logger.Error("failed to register custom validator", "tag", tag, "err", err.Error())
			return err
		}
	}
	return nil
}

func useJSONFieldNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func isCSVFile(fl validator.FieldLevel) bool {
	return IsCSVFile(fl.Field().String())
}

func isDNAPattern(fl validator.FieldLevel) bool {
	return ValidPattern(fl.Field().String())
}

func isAlgorithm(fl validator.FieldLevel) bool {
	_, err := model.ParseAlgorithm(fl.Field().String())
	return err == nil
}
