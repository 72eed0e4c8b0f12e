package api

import (
	"context"
	"net/http"
	"net/url"

	dns "nathanbeddoewebdev/opsdeck/internal/dns/domain"
	email "nathanbeddoewebdev/opsdeck/internal/email/domain"
	repo "nathanbeddoewebdev/opsdeck/internal/repo/domain"
	server "nathanbeddoewebdev/opsdeck/internal/server/domain"
	storage "nathanbeddoewebdev/opsdeck/internal/storage/domain"
)

// Collection paths, relative to the API root.
const (
	ServersPath      = "/servers"
	DomainsPath      = "/domains"
	EmailsPath       = "/emails"
	RepositoriesPath = "/repositories"
	StoragePath      = "/storage"
)

type (
	Servers      = Resource[server.Server, server.CreateOpts, server.UpdateOpts]
	Emails       = Resource[email.Account, email.CreateOpts, email.UpdateOpts]
	Repositories = Resource[repo.Repository, repo.CreateOpts, repo.UpdateOpts]
	Storage      = Resource[storage.Bucket, storage.CreateOpts, storage.UpdateOpts]
)

// Domains is the domain collection plus its nested DNS record routes.
type Domains struct {
	*Resource[dns.Domain, dns.CreateOpts, dns.UpdateOpts]
}

func (d *Domains) records(domainID string) string {
	return d.item(domainID) + "/dns"
}

// AddRecord appends a DNS record and returns the updated domain.
func (d *Domains) AddRecord(ctx context.Context, domainID string, opts dns.RecordOpts) (*dns.Domain, error) {
	var out dns.Domain
	if _, err := d.client.Do(ctx, http.MethodPost, d.records(domainID), nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRecord changes one DNS record and returns the updated domain.
func (d *Domains) UpdateRecord(ctx context.Context, domainID, recordID string, opts dns.RecordUpdateOpts) (*dns.Domain, error) {
	var out dns.Domain
	path := d.records(domainID) + "/" + url.PathEscape(recordID)
	if _, err := d.client.Do(ctx, http.MethodPut, path, nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRecord removes one DNS record and returns the updated domain.
func (d *Domains) DeleteRecord(ctx context.Context, domainID, recordID string) (*dns.Domain, error) {
	var out dns.Domain
	path := d.records(domainID) + "/" + url.PathEscape(recordID)
	if _, err := d.client.Do(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Inventory groups every collection served by one API.
type Inventory struct {
	Servers      *Servers
	Domains      *Domains
	Emails       *Emails
	Repositories *Repositories
	Storage      *Storage
}

// NewInventory binds all collections to client.
func NewInventory(client *Client) *Inventory {
	return &Inventory{
		Servers:      NewResource[server.Server, server.CreateOpts, server.UpdateOpts](client, ServersPath),
		Domains:      &Domains{NewResource[dns.Domain, dns.CreateOpts, dns.UpdateOpts](client, DomainsPath)},
		Emails:       NewResource[email.Account, email.CreateOpts, email.UpdateOpts](client, EmailsPath),
		Repositories: NewResource[repo.Repository, repo.CreateOpts, repo.UpdateOpts](client, RepositoriesPath),
		Storage:      NewResource[storage.Bucket, storage.CreateOpts, storage.UpdateOpts](client, StoragePath),
	}
}
