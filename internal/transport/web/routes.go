package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avstrong/hostelscout/internal/booking"
	"github.com/avstrong/hostelscout/internal/hostel"
	"github.com/avstrong/hostelscout/internal/recommend"
	"github.com/avstrong/hostelscout/internal/store"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

type errBody struct {
	Error string `json:"error"`
}

// writeDomainErr maps workflow errors to statuses. Returns false when the
// error is not a known domain condition and still needs handling.
func (s *Server) writeDomainErr(w http.ResponseWriter, err error) bool {
	var status int

	switch {
	case errors.Is(err, booking.ErrUnknownHostel):
		status = http.StatusNotFound
	case errors.Is(err, booking.ErrAlreadyBooked),
		errors.Is(err, booking.ErrConfirmInFlight),
		errors.Is(err, recommend.ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, booking.ErrNoSelection),
		errors.Is(err, recommend.ErrEmptyQuery):
		status = http.StatusBadRequest
	case errors.Is(err, booking.ErrConfirmationRequired):
		status = http.StatusPreconditionFailed
	default:
		return false
	}

	s.writeJSON(w, status, errBody{Error: err.Error()})

	return true
}

func (s *Server) internalErr(w http.ResponseWriter, context string, err error) {
	s.l.LogErrorf("%s: %v", context, err.Error())
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// currentFilter folds any query-param overrides into the session's view
// state and returns the result.
func (s *Server) currentFilter(r *http.Request) (hostel.Filter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()

	if q.Has("search") {
		s.filter.Search = q.Get("search")
	}

	if q.Has("max_price") {
		ceiling, err := strconv.ParseFloat(q.Get("max_price"), 64)
		if err != nil {
			return hostel.Filter{}, fmt.Errorf("parse max_price: %w", err)
		}

		s.filter.MaxPrice = ceiling
	}

	if q.Has("view") {
		switch view := hostel.View(q.Get("view")); view {
		case hostel.ViewDiscover, hostel.ViewFavorites, hostel.ViewBookings:
			s.filter.View = view
		default:
			return hostel.Filter{}, fmt.Errorf("unknown view %q", view)
		}
	}

	return s.filter, nil
}

type hostelsResponse struct {
	Filter  hostel.Filter   `json:"filter"`
	Count   int             `json:"count"`
	Hostels []hostel.Hostel `json:"hostels"`
}

func (s *Server) hostelsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := s.currentFilter(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errBody{Error: err.Error()})

		return
	}

	visible := hostel.Visible(s.catalog, filter, s.st.FavoriteSet(), s.st.BookedSet())

	s.writeJSON(w, http.StatusOK, hostelsResponse{
		Filter:  filter,
		Count:   len(visible),
		Hostels: visible,
	})
}

func (s *Server) resetViewHandler(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.filter = hostel.DefaultFilter()
	filter := s.filter
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, hostelsResponse{
		Filter:  filter,
		Count:   len(s.catalog),
		Hostels: s.catalog,
	})
}

func (s *Server) favoritesHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"favorites": s.st.Favorites()})
}

func (s *Server) toggleFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, ok := hostel.ByID(s.catalog, id); !ok {
		s.writeJSON(w, http.StatusNotFound, errBody{Error: booking.ErrUnknownHostel.Error()})

		return
	}

	nowFavorite, err := s.st.ToggleFavorite(r.Context(), id)
	if err != nil {
		s.internalErr(w, "Could not toggle favorite", err)

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"id":        id,
		"favorite":  nowFavorite,
		"favorites": s.st.Favorites(),
	})
}

func (s *Server) bookingsHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"bookings": s.st.Bookings()})
}

func (s *Server) workflowHandler(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"state": s.bManager.State(),
		"ref":   s.bManager.Ref(),
	}

	if h, ok := s.bManager.Selected(); ok {
		resp["hostel"] = h
		resp["already_booked"] = s.st.IsBooked(h.ID)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

type selectInput struct {
	HostelID string `json:"hostel_id"`
}

func (s *Server) selectHandler(w http.ResponseWriter, r *http.Request) {
	var input selectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	h, err := s.bManager.Select(input.HostelID)
	if err != nil {
		if !s.writeDomainErr(w, err) {
			s.internalErr(w, "Could not select hostel", err)
		}

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"state":          s.bManager.State(),
		"hostel":         h,
		"already_booked": s.st.IsBooked(h.ID),
	})
}

func (s *Server) confirmHandler(w http.ResponseWriter, r *http.Request) {
	record, err := s.bManager.Confirm(r.Context())
	if err != nil {
		if !s.writeDomainErr(w, err) {
			s.internalErr(w, "Could not confirm booking", err)
		}

		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"state":   s.bManager.State(),
		"booking": record,
	})
}

func (s *Server) dismissHandler(w http.ResponseWriter, _ *http.Request) {
	if err := s.bManager.Dismiss(); err != nil {
		if !s.writeDomainErr(w, err) {
			s.internalErr(w, "Could not dismiss workflow", err)
		}

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"state": s.bManager.State()})
}

type cancelInput struct {
	HostelID  string `json:"hostel_id"`
	Confirmed bool   `json:"confirmed"`
}

func (s *Server) cancelHandler(w http.ResponseWriter, r *http.Request) {
	var input cancelInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	removed, err := s.bManager.CancelExisting(r.Context(), input.HostelID, input.Confirmed)
	if err != nil {
		if !s.writeDomainErr(w, err) {
			s.internalErr(w, "Could not cancel bookings", err)
		}

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"removed":  removed,
		"bookings": s.st.Bookings(),
	})
}

type deleteInput struct {
	Confirmed bool `json:"confirmed"`
}

func (s *Server) deleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	var input deleteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	removed, err := s.bManager.DeleteRecord(r.Context(), r.PathValue("id"), input.Confirmed)
	if err != nil {
		if !s.writeDomainErr(w, err) {
			s.internalErr(w, "Could not delete booking record", err)
		}

		return
	}

	if !removed {
		s.writeJSON(w, http.StatusNotFound, errBody{Error: "booking record not found"})

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"bookings": s.st.Bookings()})
}

type chatInput struct {
	Query string `json:"query"`
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	var input chatInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	reply, err := s.chat.Ask(r.Context(), input.Query)
	if err != nil {
		if !s.writeDomainErr(w, err) {
			s.internalErr(w, "Could not run recommendation query", err)
		}

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"reply":      reply,
		"transcript": s.chat.Transcript(),
	})
}

func (s *Server) transcriptHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"transcript": s.chat.Transcript(),
		"typing":     s.chat.Typing(),
	})
}

func (s *Server) themeHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"theme": s.st.Theme()})
}

type themeInput struct {
	Theme string `json:"theme"`
}

func (s *Server) setThemeHandler(w http.ResponseWriter, r *http.Request) {
	var input themeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	theme := store.Theme(input.Theme)
	if theme != store.ThemeLight && theme != store.ThemeDark {
		s.writeJSON(w, http.StatusBadRequest, errBody{Error: fmt.Sprintf("unknown theme %q", input.Theme)})

		return
	}

	if err := s.st.SetTheme(r.Context(), theme); err != nil {
		s.internalErr(w, "Could not set theme", err)

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"theme": s.st.Theme()})
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *http.ServeMux) {
	handle := func(pattern string, h http.HandlerFunc) {
		r.Handle(pattern, s.applyMiddlewares(h, s.loggerMiddleware(), s.recoverMiddleware()))
	}

	handle("GET /api/hostels/v1", s.hostelsHandler)
	handle("POST /api/view/v1/reset", s.resetViewHandler)

	handle("GET /api/favorites/v1", s.favoritesHandler)
	handle("POST /api/favorites/v1/{id}", s.toggleFavoriteHandler)

	handle("GET /api/bookings/v1", s.bookingsHandler)
	handle("GET /api/bookings/v1/workflow", s.workflowHandler)
	handle("POST /api/bookings/v1/select", s.selectHandler)
	handle("POST /api/bookings/v1/confirm", s.confirmHandler)
	handle("POST /api/bookings/v1/dismiss", s.dismissHandler)
	handle("POST /api/bookings/v1/cancel", s.cancelHandler)
	handle("DELETE /api/bookings/v1/{id}", s.deleteBookingHandler)

	handle("POST /api/chat/v1", s.chatHandler)
	handle("GET /api/chat/v1", s.transcriptHandler)

	handle("GET /api/theme/v1", s.themeHandler)
	handle("POST /api/theme/v1", s.setThemeHandler)

	handle(fmt.Sprintf("GET %s", s.conf.LivenessEndpoint), s.livenessHandler)
}
