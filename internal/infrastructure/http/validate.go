package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	msgRateFieldsRequired = "Base currency code, target currency code, rate, and effective date are required"
	msgInvalidDate        = "Invalid date format. Use YYYY-MM-DD"
	msgInvalidRate        = "Rate must be a non-negative number"
	msgRatePrecision      = "Rate must have at most 12 integer digits and 8 decimal places"
	msgCurrencyRequired   = "Code and name are required"
	msgCurrencyCode       = "Code must be 3 uppercase letters"
	msgInvalidBody        = "Invalid JSON body"
	msgInvalidID          = "Invalid id"
)

var (
	maxRate        = decimal.New(1, 12)
	currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)
	validate       = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("nonneg_decimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
	// Matches the NUMERIC(20,8) rates column.
	_ = v.RegisterValidation("rate_precision", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return true
		}
		return d.Equal(d.Truncate(8)) && d.Abs().LessThan(maxRate)
	})
	_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		return currencyCodeRe.MatchString(fl.Field().String())
	})
	return v
}

// rateBody accepts rate as a JSON number or a numeric string.
type rateBody struct {
	BaseCurrencyCode   string `json:"baseCurrencyCode"`
	TargetCurrencyCode string `json:"targetCurrencyCode"`
	Rate               any    `json:"rate"`
	EffectiveDate      string `json:"effectiveDate"`
}

type rateRequest struct {
	BaseCurrencyCode   string `validate:"required"`
	TargetCurrencyCode string `validate:"required"`
	Rate               string `validate:"nonneg_decimal,rate_precision"`
	EffectiveDate      string `validate:"required,isodate"`
}

type currencyRequest struct {
	Code string `json:"code" validate:"required,currency_code"`
	Name string `json:"name" validate:"required"`
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// decodeRate reads and validates a rate payload. The returned string is the
// caller-facing message when the payload is rejected.
func decodeRate(r *http.Request) (application.RateInput, string) {
	var body rateBody
	if err := decodeJSON(r, &body); err != nil {
		return application.RateInput{}, msgInvalidBody
	}
	req := rateRequest{
		BaseCurrencyCode:   body.BaseCurrencyCode,
		TargetCurrencyCode: body.TargetCurrencyCode,
		EffectiveDate:      body.EffectiveDate,
	}
	switch v := body.Rate.(type) {
	case json.Number:
		req.Rate = v.String()
	case string:
		req.Rate = strings.TrimSpace(v)
	}

	err := validate.Struct(req)
	if body.Rate == nil {
		return application.RateInput{}, msgRateFieldsRequired
	}
	if err != nil {
		return application.RateInput{}, rateMessage(err)
	}
	date, _ := domain.ParseDate(req.EffectiveDate)
	return application.RateInput{
		BaseCurrencyCode:   req.BaseCurrencyCode,
		TargetCurrencyCode: req.TargetCurrencyCode,
		Rate:               decimal.RequireFromString(req.Rate),
		EffectiveDate:      date,
	}, ""
}

// rateMessage reports missing fields first, then the date, then the rate.
func rateMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgInvalidBody
	}
	msg := msgInvalidRate
	for _, fe := range verrs {
		switch {
		case fe.Tag() == "required":
			return msgRateFieldsRequired
		case fe.Field() == "EffectiveDate":
			msg = msgInvalidDate
		case fe.Tag() == "rate_precision" && msg != msgInvalidDate:
			msg = msgRatePrecision
		}
	}
	return msg
}

func decodeCurrency(r *http.Request) (currencyRequest, string) {
	var req currencyRequest
	if err := decodeJSON(r, &req); err != nil {
		return currencyRequest{}, msgInvalidBody
	}
	if err := validate.Struct(req); err != nil {
		return currencyRequest{}, currencyMessage(err)
	}
	return req, ""
}

// currencyMessage reports missing fields before a malformed code.
func currencyMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgInvalidBody
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return msgCurrencyRequired
		}
	}
	return msgCurrencyCode
}
