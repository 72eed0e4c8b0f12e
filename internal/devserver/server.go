// Package devserver is an in-memory implementation of the inventory REST
// API. It backs `opsdeck devserver` for local demos and serves as the
// integration backend in tests.
package devserver

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"time"

	dns "nathanbeddoewebdev/opsdeck/internal/dns/domain"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	email "nathanbeddoewebdev/opsdeck/internal/email/domain"
	repo "nathanbeddoewebdev/opsdeck/internal/repo/domain"
	server "nathanbeddoewebdev/opsdeck/internal/server/domain"
	storage "nathanbeddoewebdev/opsdeck/internal/storage/domain"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

// DefaultPrefix is the path the API is mounted under.
const DefaultPrefix = "/api/v1"

const maxBody = 1 << 20

// Server holds every collection and serves them over HTTP.
type Server struct {
	render *render.Render
	logger zerolog.Logger
	router *mux.Router
	now    func() time.Time

	servers  *collection[server.Server, server.CreateOpts, server.UpdateOpts]
	domains  *collection[dns.Domain, dns.CreateOpts, dns.UpdateOpts]
	emails   *collection[email.Account, email.CreateOpts, email.UpdateOpts]
	repos    *collection[repo.Repository, repo.CreateOpts, repo.UpdateOpts]
	storages *collection[storage.Bucket, storage.CreateOpts, storage.UpdateOpts]
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock overrides the clock used for server-assigned dates.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithSeed loads fixtures into the collections.
func WithSeed(seed *Seed) Option {
	return func(s *Server) {
		s.servers.load(seed.Servers)
		s.domains.load(seed.Domains)
		s.emails.load(seed.Emails)
		s.repos.load(seed.Repositories)
		s.storages.load(seed.Storage)
	}
}

// New creates an empty server mounted at prefix.
func New(prefix string, opts ...Option) *Server {
	s := &Server{
		render: render.New(render.Options{IndentJSON: true}),
		logger: zerolog.Nop(),
		router: mux.NewRouter(),
		now:    time.Now,
	}
	s.servers = &collection[server.Server, server.CreateOpts, server.UpdateOpts]{
		noun:   "Server",
		prefix: "srv",
		build: func(id string, o server.CreateOpts) server.Server {
			return server.Server{
				ID: id, Name: o.Name, IPAddress: o.IPAddress, OS: o.OS, Specs: o.Specs,
				Location: o.Location, Provider: o.Provider, Status: o.Status, Category: o.Category,
				ResponsibleTeam: o.ResponsibleTeam, LastPatchDate: o.LastPatchDate,
				Tags: server.NormalizeTags(o.Tags),
			}
		},
		setID: func(it *server.Server, id string) { it.ID = id },
	}
	s.domains = &collection[dns.Domain, dns.CreateOpts, dns.UpdateOpts]{
		noun:   "Domain",
		prefix: "dom",
		build: func(id string, o dns.CreateOpts) dns.Domain {
			return dns.Domain{
				ID: id, Name: o.Name, Registrar: o.Registrar, RegistrationDate: o.RegistrationDate,
				ExpiryDate: o.ExpiryDate, AutoRenew: o.AutoRenew, Owner: o.Owner, Status: o.Status,
				Cost: o.Cost,
			}
		},
		setID: func(it *dns.Domain, id string) { it.ID = id },
	}
	s.emails = &collection[email.Account, email.CreateOpts, email.UpdateOpts]{
		noun:   "Email",
		prefix: "email",
		build: func(id string, o email.CreateOpts) email.Account {
			created := o.CreatedDate
			if created == "" {
				created = s.today()
			}
			return email.Account{
				ID: id, Email: o.Email, DisplayName: o.DisplayName, Provider: o.Provider,
				Status: o.Status, Department: o.Department, QuotaLimit: o.QuotaLimit,
				CreatedDate: created,
			}
		},
		setID: func(it *email.Account, id string) { it.ID = id },
	}
	s.repos = &collection[repo.Repository, repo.CreateOpts, repo.UpdateOpts]{
		noun:   "Repository",
		prefix: "repo",
		build: func(id string, o repo.CreateOpts) repo.Repository {
			return repo.Repository{
				ID: id, Name: o.Name, URL: o.URL, Provider: o.Provider, Language: o.Language,
				Visibility: o.Visibility, OwnerTeam: o.OwnerTeam, CIStatus: o.CIStatus,
				Branches: 1,
			}
		},
		setID: func(it *repo.Repository, id string) { it.ID = id },
	}
	s.storages = &collection[storage.Bucket, storage.CreateOpts, storage.UpdateOpts]{
		noun:   "Storage",
		prefix: "storage",
		build: func(id string, o storage.CreateOpts) storage.Bucket {
			return storage.Bucket{
				ID: id, Name: o.Name, Provider: o.Provider, Type: o.Type, Region: o.Region,
				CapacityBytes: o.CapacityBytes, IsPublic: o.IsPublic, CreatedDate: s.today(),
			}
		},
		setID: func(it *storage.Bucket, id string) { it.ID = id },
	}

	for _, opt := range opts {
		opt(s)
	}

	api := s.router.PathPrefix(prefix).Subrouter()
	mount(s, api, "/servers", s.servers)
	s.mountDNS(api)
	mount(s, api, "/domains", s.domains)
	mount(s, api, "/emails", s.emails)
	mount(s, api, "/repositories", s.repos)
	mount(s, api, "/storage", s.storages)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.error(w, http.StatusNotFound, errors.New("not found"))
	})

	return s
}

func (s *Server) today() string {
	return s.now().Format(time.DateOnly)
}

// ServeHTTP logs and dispatches one request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.router.ServeHTTP(w, r)
	s.logger.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", r.Header.Get("X-Request-ID")).
		Dur("elapsed", time.Since(start)).
		Msg("request")
}

func mount[T domain.Entity, C, U validatable](s *Server, r *mux.Router, path string, c *collection[T, C, U]) {
	list := func(w http.ResponseWriter, req *http.Request) {
		items, err := c.list(req.URL.Query())
		s.respond(w, http.StatusOK, items, err)
	}
	create := func(w http.ResponseWriter, req *http.Request) {
		body, err := readBody(req)
		if err != nil {
			s.error(w, http.StatusBadRequest, err)
			return
		}
		item, err := c.create(body)
		s.respond(w, http.StatusCreated, item, err)
	}

	r.HandleFunc(path, list).Methods(http.MethodGet)
	r.HandleFunc(path+"/", list).Methods(http.MethodGet)
	r.HandleFunc(path, create).Methods(http.MethodPost)
	r.HandleFunc(path+"/", create).Methods(http.MethodPost)

	r.HandleFunc(path+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		item, err := c.get(mux.Vars(req)["id"])
		s.respond(w, http.StatusOK, item, err)
	}).Methods(http.MethodGet)

	r.HandleFunc(path+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		body, err := readBody(req)
		if err != nil {
			s.error(w, http.StatusBadRequest, err)
			return
		}
		item, err := c.update(mux.Vars(req)["id"], body)
		s.respond(w, http.StatusOK, item, err)
	}).Methods(http.MethodPut)

	r.HandleFunc(path+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		if err := c.remove(mux.Vars(req)["id"]); err != nil {
			s.respond(w, 0, nil, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)
}

func (s *Server) mountDNS(r *mux.Router) {
	r.HandleFunc("/domains/{id}/dns", s.addRecord).Methods(http.MethodPost)
	r.HandleFunc("/domains/{id}/dns/{recordId}", s.updateRecord).Methods(http.MethodPut)
	r.HandleFunc("/domains/{id}/dns/{recordId}", s.deleteRecord).Methods(http.MethodDelete)
}

func (s *Server) addRecord(w http.ResponseWriter, req *http.Request) {
	body, err := readBody(req)
	if err != nil {
		s.error(w, http.StatusBadRequest, err)
		return
	}
	var opts dns.RecordOpts
	if err := decodeBody(body, &opts); err != nil {
		s.respond(w, 0, nil, err)
		return
	}
	if err := opts.Validate(); err != nil {
		s.respond(w, 0, nil, err)
		return
	}

	updated, err := s.domains.mutate(mux.Vars(req)["id"], func(d *dns.Domain) error {
		d.DNSRecords = append(slices.Clone(d.DNSRecords), dns.Record{
			ID:    newID("dns"),
			Type:  opts.Type,
			Name:  opts.Name,
			Value: opts.Value,
			TTL:   opts.TTL,
		})
		return nil
	})
	s.respond(w, http.StatusCreated, updated, err)
}

func (s *Server) updateRecord(w http.ResponseWriter, req *http.Request) {
	body, err := readBody(req)
	if err != nil {
		s.error(w, http.StatusBadRequest, err)
		return
	}
	var patch dns.RecordUpdateOpts
	if err := decodeBody(body, &patch); err != nil {
		s.respond(w, 0, nil, err)
		return
	}
	if err := patch.Validate(); err != nil {
		s.respond(w, 0, nil, err)
		return
	}

	vars := mux.Vars(req)
	updated, err := s.domains.mutate(vars["id"], func(d *dns.Domain) error {
		i := slices.IndexFunc(d.DNSRecords, func(r dns.Record) bool { return r.ID == vars["recordId"] })
		if i < 0 {
			return errorf(domain.ErrNotFound, "DNS record %s not found", vars["recordId"])
		}
		records := slices.Clone(d.DNSRecords)
		rec := &records[i]
		if patch.Type != nil {
			rec.Type = *patch.Type
		}
		if patch.Name != nil {
			rec.Name = *patch.Name
		}
		if patch.Value != nil {
			rec.Value = *patch.Value
		}
		if patch.TTL != nil {
			rec.TTL = *patch.TTL
		}
		if err := dns.CheckContent(rec.Type, rec.Value); err != nil {
			return err
		}
		d.DNSRecords = records
		return nil
	})
	s.respond(w, http.StatusOK, updated, err)
}

// deleteRecord succeeds when the record is already gone, matching the API.
func (s *Server) deleteRecord(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	updated, err := s.domains.mutate(vars["id"], func(d *dns.Domain) error {
		d.DNSRecords = slices.DeleteFunc(slices.Clone(d.DNSRecords), func(r dns.Record) bool {
			return r.ID == vars["recordId"]
		})
		return nil
	})
	s.respond(w, http.StatusOK, updated, err)
}

func readBody(req *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(req.Body, maxBody))
}

// respond writes v with status, or the error mapped to its status code.
func (s *Server) respond(w http.ResponseWriter, status int, v any, err error) {
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.error(w, http.StatusNotFound, err)
		case errors.Is(err, domain.ErrInvalid):
			s.error(w, http.StatusUnprocessableEntity, err)
		default:
			s.error(w, http.StatusInternalServerError, err)
		}
		return
	}
	if rerr := s.render.JSON(w, status, v); rerr != nil {
		s.logger.Error().Err(rerr).Msg("failed to render response")
	}
}

func (s *Server) error(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Warn().Int("status", status).Err(err).Msg("request error")
	}
	if rerr := s.render.JSON(w, status, map[string]string{"detail": detail(err)}); rerr != nil {
		s.logger.Error().Err(rerr).Msg("failed to render error")
	}
}
