package httpserver

import (
	"net/http"
)

func (s *Server) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	cs, err := s.currencies.List(r.Context())
	if err != nil {
		fail(w, r, err, "Error fetching currencies")
		return
	}
	writeData(w, http.StatusOK, toCurrencyDTOs(cs))
}

func (s *Server) GetCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := s.currencies.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Error fetching currency")
		return
	}
	writeData(w, http.StatusOK, toCurrencyDTO(c))
}

func (s *Server) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	req, msg := decodeCurrency(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	c, err := s.currencies.Create(r.Context(), req.Code, req.Name)
	if err != nil {
		fail(w, r, err, "Error creating currency")
		return
	}
	writeData(w, http.StatusCreated, toCurrencyDTO(c))
}

func (s *Server) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, msg := decodeCurrency(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	c, err := s.currencies.Update(r.Context(), id, req.Code, req.Name)
	if err != nil {
		fail(w, r, err, "Error updating currency")
		return
	}
	writeData(w, http.StatusOK, toCurrencyDTO(c))
}

func (s *Server) DeleteCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := s.currencies.Delete(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Error deleting currency")
		return
	}
	writeData(w, http.StatusOK, toCurrencyDTO(c))
}
