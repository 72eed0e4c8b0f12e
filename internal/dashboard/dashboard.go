// Package dashboard summarises the whole inventory on one screen: counts
// per kind and status, domains close to expiry, storage usage and mailboxes
// near their quota.
package dashboard

import (
	"context"
	"sort"
	"time"

	"nathanbeddoewebdev/opsdeck/internal/display"
	dns "nathanbeddoewebdev/opsdeck/internal/dns/domain"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	email "nathanbeddoewebdev/opsdeck/internal/email/domain"
	repo "nathanbeddoewebdev/opsdeck/internal/repo/domain"
	"nathanbeddoewebdev/opsdeck/internal/resource"
	server "nathanbeddoewebdev/opsdeck/internal/server/domain"
	storage "nathanbeddoewebdev/opsdeck/internal/storage/domain"

	"golang.org/x/sync/errgroup"
)

const (
	// ExpiryWindow is how far ahead, in days, a domain counts as expiring.
	ExpiryWindow = 30

	// QuotaHotPercent is the mailbox usage at which an account is listed.
	QuotaHotPercent = 90

	// RenewalMonths is the length of the renewal calendar.
	RenewalMonths = 12
)

// Lister is the read side of a resource service.
type Lister[T any] interface {
	List(ctx context.Context, filter resource.Filter) ([]T, error)
}

// Sources are the services the dashboard reads.
type Sources struct {
	Servers      Lister[server.Server]
	Domains      Lister[dns.Domain]
	Emails       Lister[email.Account]
	Repositories Lister[repo.Repository]
	Storage      Lister[storage.Bucket]
}

// StatusCount is the number of records in one status.
type StatusCount struct {
	Status string
	Count  int
}

// Card is the per-kind tally. Err is set, and the counts are empty, when
// that kind failed to load.
type Card struct {
	Kind     string
	Title    string
	Total    int
	ByStatus []StatusCount
	Err      string
}

// ExpiringDomain is a domain inside the expiry window or already expired.
type ExpiringDomain struct {
	ID     string
	Name   string
	Expiry display.ExpiryInfo
}

// Usage is one bar of a usage chart.
type Usage struct {
	ID      string
	Name    string
	Percent int
	Level   display.Level
}

// Summary is everything the dashboard renders.
type Summary struct {
	Cards    []Card
	Expiring []ExpiringDomain
	Storage  []Usage
	QuotaHot []Usage

	// Renewals counts domain expiries per calendar month, starting with the
	// current month.
	Renewals []float64

	LoadedAt time.Time
}

// Failed reports how many cards could not be loaded.
func (s Summary) Failed() int {
	n := 0
	for _, c := range s.Cards {
		if c.Err != "" {
			n++
		}
	}
	return n
}

// Load fetches every kind concurrently. A failure is recorded on that
// kind's card and does not stop or cancel the other fetches, so the group
// goroutines never return an error.
func Load(ctx context.Context, src Sources, now time.Time) Summary {
	var (
		servers []server.Server
		domains []dns.Domain
		emails  []email.Account
		repos   []repo.Repository
		buckets []storage.Bucket
		errs    [5]error
	)

	var g errgroup.Group
	g.Go(func() error {
		servers, errs[0] = list(ctx, src.Servers)
		return nil
	})
	g.Go(func() error {
		domains, errs[1] = list(ctx, src.Domains)
		return nil
	})
	g.Go(func() error {
		emails, errs[2] = list(ctx, src.Emails)
		return nil
	})
	g.Go(func() error {
		repos, errs[3] = list(ctx, src.Repositories)
		return nil
	})
	g.Go(func() error {
		buckets, errs[4] = list(ctx, src.Storage)
		return nil
	})
	// Always nil; per-card errors live in errs.
	_ = g.Wait()

	s := Summary{LoadedAt: now}
	s.Cards = []Card{
		card(server.Kind, "Servers", servers, errs[0], domain.EnumStrings(server.Statuses()),
			func(v server.Server) string { return string(v.Status) }),
		card(dns.Kind, "Domains", domains, errs[1], domain.EnumStrings(dns.Statuses()),
			func(v dns.Domain) string { return string(v.Status) }),
		card(email.Kind, "Email accounts", emails, errs[2], domain.EnumStrings(email.Statuses()),
			func(v email.Account) string { return string(v.Status) }),
		card(repo.Kind, "Repositories", repos, errs[3], domain.EnumStrings(repo.CIStatuses()),
			func(v repo.Repository) string { return string(v.CIStatus) }),
		card(storage.Kind, "Storage", buckets, errs[4], domain.EnumStrings(storage.Types()),
			func(v storage.Bucket) string { return string(v.Type) }),
	}
	s.Expiring = expiring(domains, now)
	s.Storage = storageUsage(buckets)
	s.QuotaHot = quotaHot(emails)
	if errs[1] == nil {
		s.Renewals = renewals(domains, now)
	}
	return s
}

func list[T any](ctx context.Context, l Lister[T]) ([]T, error) {
	if l == nil {
		return nil, nil
	}
	return l.List(ctx, nil)
}

func card[T any](kind, title string, items []T, err error, statuses []string, status func(T) string) Card {
	c := Card{Kind: kind, Title: title}
	if err != nil {
		c.Err = domain.Message(err)
		return c
	}
	c.Total = len(items)
	counts := make(map[string]int, len(statuses))
	for _, it := range items {
		counts[status(it)]++
	}
	for _, st := range statuses {
		c.ByStatus = append(c.ByStatus, StatusCount{Status: st, Count: counts[st]})
	}
	return c
}

// expiring returns domains with ExpiryWindow days or fewer left, soonest
// first. Domains with an unparseable expiry date are skipped.
func expiring(domains []dns.Domain, now time.Time) []ExpiringDomain {
	var out []ExpiringDomain
	for _, d := range domains {
		info, err := display.ExpiryFromString(d.ExpiryDate, now)
		if err != nil || info.Days > ExpiryWindow {
			continue
		}
		out = append(out, ExpiringDomain{ID: d.ID, Name: d.Name, Expiry: info})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Expiry.Days < out[j].Expiry.Days })
	return out
}

func renewals(domains []dns.Domain, now time.Time) []float64 {
	out := make([]float64, RenewalMonths)
	start := now.Year()*12 + int(now.Month()) - 1
	for _, d := range domains {
		t, err := display.ParseDate(d.ExpiryDate)
		if err != nil {
			continue
		}
		if i := t.Year()*12 + int(t.Month()) - 1 - start; i >= 0 && i < RenewalMonths {
			out[i]++
		}
	}
	return out
}

func storageUsage(buckets []storage.Bucket) []Usage {
	out := make([]Usage, 0, len(buckets))
	for _, b := range buckets {
		pct := display.UsagePercent(float64(b.UsageBytes), float64(b.CapacityBytes))
		out = append(out, Usage{ID: b.ID, Name: b.Name, Percent: pct, Level: display.UsageLevel(pct)})
	}
	return out
}

// quotaHot lists accounts at or above QuotaHotPercent, fullest first.
func quotaHot(accounts []email.Account) []Usage {
	var out []Usage
	for _, a := range accounts {
		pct := display.UsagePercent(float64(a.QuotaUsed), float64(a.QuotaLimit))
		if pct < QuotaHotPercent {
			continue
		}
		out = append(out, Usage{ID: a.ID, Name: a.Email, Percent: pct, Level: display.UsageLevel(pct)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percent > out[j].Percent })
	return out
}
