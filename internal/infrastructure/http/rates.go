package httpserver

import (
	"net/http"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

func (s *Server) GetLatestRates(w http.ResponseWriter, r *http.Request) {
	rows, err := s.rates.Latest(r.Context())
	if err != nil {
		fail(w, r, err, "Error fetching latest rates")
		return
	}
	writeData(w, http.StatusOK, toRateDTOs(rows))
}

func (s *Server) GetHistoricalRates(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidDate)
		return
	}
	rows, err := s.rates.Historical(r.Context(), date)
	if err != nil {
		fail(w, r, err, "Error fetching historical rates")
		return
	}
	writeData(w, http.StatusOK, toRateDTOs(rows))
}

func (s *Server) GetPaginatedRates(w http.ResponseWriter, r *http.Request) {
	sel, ok := selection(w, r)
	if !ok {
		return
	}
	var offset, limit *int
	q := r.URL.Query()
	if runtime.BindQueryParameter("form", true, false, "offset", q, &offset) != nil ||
		runtime.BindQueryParameter("form", true, false, "limit", q, &limit) != nil {
		writeError(w, http.StatusBadRequest, application.MsgInvalidPagination)
		return
	}
	page := application.Page{Offset: 0, Limit: application.DefaultPageLimit}
	if offset != nil {
		page.Offset = *offset
	}
	if limit != nil {
		page.Limit = *limit
	}

	rows, err := s.rates.Paginated(r.Context(), sel, page)
	if err != nil {
		fail(w, r, err, "Error fetching rates")
		return
	}
	writePage(w, toRateDTOs(rows), pagination{
		Offset:  page.Offset,
		Limit:   page.Limit,
		HasMore: page.HasMore(len(rows)),
	})
}

func (s *Server) ListRates(w http.ResponseWriter, r *http.Request) {
	rows, err := s.rates.All(r.Context())
	if err != nil {
		fail(w, r, err, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, toListedRateDTOs(rows))
}

func (s *Server) CreateRate(w http.ResponseWriter, r *http.Request) {
	in, msg := decodeRate(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	rate, err := s.rates.Create(r.Context(), in)
	if err != nil {
		fail(w, r, err, "Error creating rate")
		return
	}
	writeData(w, http.StatusCreated, toStoredRateDTO(rate))
}

func (s *Server) UpdateRate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, msg := decodeRate(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	rate, err := s.rates.Update(r.Context(), id, in)
	if err != nil {
		fail(w, r, err, "Error updating rate")
		return
	}
	writeData(w, http.StatusOK, toStoredRateDTO(rate))
}

func (s *Server) DeleteRate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deleted, err := s.rates.Delete(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Error deleting rate")
		return
	}
	writeData(w, http.StatusOK, deletedDTO{ID: deleted})
}

// selection reads the optional date and baseCurrency query parameters. A
// date of "" or "null" means the latest date.
func selection(w http.ResponseWriter, r *http.Request) (application.RateSelection, bool) {
	q := r.URL.Query()
	sel := application.RateSelection{BaseCurrency: q.Get("baseCurrency")}
	if raw := q.Get("date"); raw != "" && raw != "null" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidDate)
			return application.RateSelection{}, false
		}
		sel.Date = &d
	}
	return sel, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}
