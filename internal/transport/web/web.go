package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/avstrong/hostelscout/internal/booking"
	"github.com/avstrong/hostelscout/internal/hostel"
	"github.com/avstrong/hostelscout/internal/logger"
	"github.com/avstrong/hostelscout/internal/recommend"
	"github.com/avstrong/hostelscout/internal/store"
)

// Server is the view shell: it exposes the session's state and operations as
// local JSON endpoints. All domain logic lives behind the injected pieces.
type Server struct {
	srv      *http.Server
	router   *http.ServeMux
	l        *logger.Logger
	conf     Conf
	catalog  []hostel.Hostel
	st       *store.Store
	bManager *booking.Manager
	chat     *recommend.Session

	mu     sync.Mutex
	filter hostel.Filter
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
}

func New(
	ctx context.Context,
	conf Conf,
	catalog []hostel.Hostel,
	st *store.Store,
	bookingManager *booking.Manager,
	chat *recommend.Session,
) (*Server, error) {
	mux := http.NewServeMux()

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           mux,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	//nolint:exhaustruct
	server := &Server{
		srv:      srv,
		router:   mux,
		l:        conf.L,
		conf:     conf,
		catalog:  catalog,
		st:       st,
		bManager: bookingManager,
		chat:     chat,
		filter:   hostel.DefaultFilter(),
	}

	server.addRoutes(mux)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}
