package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/domain"
	"fxadmin-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

type successBody struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type failureBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type pagination struct {
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

type rateDTO struct {
	BaseCurrencyCode   string  `json:"base_currency_code"`
	TargetCurrencyCode string  `json:"target_currency_code"`
	Rate               float64 `json:"rate"`
	EffectiveDate      string  `json:"effective_date"`
}

type listedRateDTO struct {
	ID int64 `json:"id"`
	rateDTO
}

type storedRateDTO struct {
	ID               int64   `json:"id"`
	BaseCurrencyID   int64   `json:"base_currency_id"`
	TargetCurrencyID int64   `json:"target_currency_id"`
	Rate             float64 `json:"rate"`
	EffectiveDate    string  `json:"effective_date"`
}

type currencyDTO struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type deletedDTO struct {
	ID int64 `json:"id"`
}

func toRateDTO(v domain.RateView) rateDTO {
	return rateDTO{
		BaseCurrencyCode:   v.BaseCurrencyCode,
		TargetCurrencyCode: v.TargetCurrencyCode,
		Rate:               v.Rate.InexactFloat64(),
		EffectiveDate:      domain.FormatDate(v.EffectiveDate),
	}
}

func toRateDTOs(rows []domain.RateView) []rateDTO {
	out := make([]rateDTO, 0, len(rows))
	for _, v := range rows {
		out = append(out, toRateDTO(v))
	}
	return out
}

func toListedRateDTOs(rows []domain.RateView) []listedRateDTO {
	out := make([]listedRateDTO, 0, len(rows))
	for _, v := range rows {
		out = append(out, listedRateDTO{ID: v.ID, rateDTO: toRateDTO(v)})
	}
	return out
}

func toStoredRateDTO(r domain.Rate) storedRateDTO {
	return storedRateDTO{
		ID:               r.ID,
		BaseCurrencyID:   r.BaseCurrencyID,
		TargetCurrencyID: r.TargetCurrencyID,
		Rate:             r.Rate.InexactFloat64(),
		EffectiveDate:    domain.FormatDate(r.EffectiveDate),
	}
}

func toCurrencyDTO(c domain.Currency) currencyDTO {
	return currencyDTO{ID: c.ID, Code: c.Code, Name: c.Name}
}

func toCurrencyDTOs(cs []domain.Currency) []currencyDTO {
	out := make([]currencyDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCurrencyDTO(c))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successBody{Success: true, Data: data})
}

func writePage(w http.ResponseWriter, data any, p pagination) {
	writeJSON(w, http.StatusOK, successBody{Success: true, Data: data, Pagination: &p})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, failureBody{Success: false, Message: msg})
}

// fail maps a service error to a status and message. Storage failures are
// logged and answered with fallback so that causes never reach the client.
func fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, application.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, application.ErrConflict), errors.Is(err, application.ErrInUse):
		status = http.StatusConflict
	}
	msg := application.Message(err)
	if msg == "" {
		msg = fallback
	}
	if status == http.StatusInternalServerError {
		logx.FromContext(r.Context()).Error("http.handler_failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeError(w, status, msg)
}
