package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"hotel/shared/constant"
	"hotel/shared/failure"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const bytesPerMB = 1024 * 1024

// phonePattern accepts international numbers with optional separators, e.g. "+94 11 234 5678".
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}[0-9]$`)

var validate *val.Validate

func fileHeader(field val.FieldLevel) (multipart.FileHeader, bool) {
	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return file, true
	case *multipart.FileHeader:
		if file == nil {
			return multipart.FileHeader{}, false
		}

		return *file, true
	}

	return multipart.FileHeader{}, false
}

func validateMimetype(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	contentType := strings.ToLower(file.Header.Get(constant.RequestHeaderContentType))

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

func validateFileSize(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= maxSizeMB*bytesPerMB
}

func validateDateOnly(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DateOnlyFormat, value)

	return err == nil
}

func validatePhone(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return phonePattern.MatchString(value)
}

// jsonName reports fields by their json name so messages match the request payload.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}

	return name
}

// decimalValue lets numeric tags such as gt=0 apply to decimal amounts.
func decimalValue(field reflect.Value) any {
	switch value := field.Interface().(type) {
	case decimal.Decimal:
		return value.InexactFloat64()
	case decimal.NullDecimal:
		if !value.Valid {
			return nil
		}

		return value.Decimal.InexactFloat64()
	}

	return nil
}

func mustRegister(tag string, fn val.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(jsonName)
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	mustRegister("dateonly", validateDateOnly)
	mustRegister("phone", validatePhone)
	mustRegister("mimetypes", validateMimetype)
	mustRegister("maxfilesize", validateFileSize)
}

// Validate decodes a JSON body into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
