// Package jsonstore implements storage.IStorage against the local JSON
// document server. Every repo call is one HTTP round trip; the store
// owns no state of its own.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cabcab/pkg/apperrors"
	"cabcab/pkg/logger"
	"cabcab/storage"
)

type Store struct {
	baseURL string
	client  *http.Client
	log     logger.ILogger
}

func New(baseURL string, log logger.ILogger) storage.IStorage {
	return &Store{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

func (s *Store) User() storage.IUserStorage         { return &userRepo{store: s} }
func (s *Store) Ride() storage.IRideStorage         { return &rideRepo{store: s} }
func (s *Store) Vehicle() storage.IVehicleStorage   { return &vehicleRepo{store: s} }
func (s *Store) Location() storage.ILocationStorage { return &locationRepo{store: s} }
func (s *Store) Payment() storage.IPaymentStorage   { return &paymentRepo{store: s} }

// getOne fetches /<collection>/<id> into out. A 404 becomes NOT_FOUND.
func (s *Store) getOne(ctx context.Context, collection, id string, out interface{}) error {
	resp, err := s.do(ctx, http.MethodGet, fmt.Sprintf("%s/%s/%s", s.baseURL, collection, id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NotFound("%s with ID %s not found", itemName(collection), id)
	}
	if resp.StatusCode != http.StatusOK {
		return unexpectedStatus(collection, resp)
	}
	return decode(resp.Body, out)
}

// query fetches /<collection>/query?params into out. An unknown
// collection (404) is treated as an empty result set.
func (s *Store) query(ctx context.Context, collection string, params url.Values, out interface{}) error {
	resp, err := s.do(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/query?%s", s.baseURL, collection, params.Encode()), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return unexpectedStatus(collection, resp)
	}
	return decode(resp.Body, out)
}

func (s *Store) list(ctx context.Context, collection string, out interface{}) error {
	resp, err := s.do(ctx, http.MethodGet, fmt.Sprintf("%s/%s", s.baseURL, collection), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return unexpectedStatus(collection, resp)
	}
	return decode(resp.Body, out)
}

// create POSTs item to /<collection> and decodes the echoed record.
func (s *Store) create(ctx context.Context, collection string, item, out interface{}) error {
	resp, err := s.do(ctx, http.MethodPost, fmt.Sprintf("%s/%s", s.baseURL, collection), item)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return unexpectedStatus(collection, resp)
	}
	return decode(resp.Body, out)
}

// update PUTs the full record to /<collection>/<id>.
func (s *Store) update(ctx context.Context, collection, id string, item, out interface{}) error {
	resp, err := s.do(ctx, http.MethodPut, fmt.Sprintf("%s/%s/%s", s.baseURL, collection, id), item)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NotFound("%s with ID %s not found", itemName(collection), id)
	}
	if resp.StatusCode != http.StatusOK {
		return unexpectedStatus(collection, resp)
	}
	return decode(resp.Body, out)
}

func (s *Store) delete(ctx context.Context, collection, id string) error {
	resp, err := s.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%s/%s", s.baseURL, collection, id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NotFound("%s with ID %s not found", itemName(collection), id)
	}
	if resp.StatusCode != http.StatusOK {
		return unexpectedStatus(collection, resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *Store) do(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Store(err, "failed to encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperrors.Store(err, "failed to build store request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("store request failed", logger.String("url", url), logger.Error(err))
		return nil, apperrors.Store(err, "cannot reach the data store, is the server running?")
	}
	return resp, nil
}

func decode(r io.Reader, out interface{}) error {
	if out == nil {
		io.Copy(io.Discard, r)
		return nil
	}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return apperrors.Store(err, "failed to decode store response")
	}
	return nil
}

func unexpectedStatus(collection string, resp *http.Response) error {
	return apperrors.Store(
		fmt.Errorf("%s: unexpected status %d", collection, resp.StatusCode),
		"data store request failed")
}

// itemName maps a collection to the singular used in error messages.
func itemName(collection string) string {
	switch collection {
	case "users":
		return "user"
	case "rides":
		return "ride"
	case "vehicles":
		return "vehicle"
	case "locations":
		return "location"
	case "payments":
		return "payment method"
	}
	return "item"
}
