package anonchat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore keeps serialized message records addressed by content id.
type BlobStore interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, id string) ([]byte, error)
}

var cidBuilder = cid.V1Builder{Codec: cid.Raw, MhType: mh.SHA2_256}

// ContentID returns the CIDv1 (raw codec, sha2-256) of data.
func ContentID(data []byte) (string, error) {
	c, err := cidBuilder.Sum(data)
	if err != nil {
		return "", fmt.Errorf("compute cid: %w", err)
	}
	return c.String(), nil
}

// LocalStore keeps blobs in process memory, addressed by CID.
type LocalStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewLocalStore() *LocalStore {
	return &LocalStore{blobs: make(map[string][]byte)}
}

func (l *LocalStore) Put(_ context.Context, data []byte) (string, error) {
	id, err := ContentID(data)
	if err != nil {
		return "", err
	}
	l.mu.Lock()
	l.blobs[id] = bytes.Clone(data)
	l.mu.Unlock()
	return id, nil
}

func (l *LocalStore) Get(_ context.Context, id string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, ok := l.blobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, id)
	}
	return bytes.Clone(data), nil
}

// GatewayStore uploads blobs to an IPFS-compatible HTTP API
// (POST /api/v0/add) and reads them back with /api/v0/cat. Calls go through a
// circuit breaker that opens after three consecutive failures.
type GatewayStore struct {
	apiURL  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewGatewayStore(apiURL string, log *zap.Logger) *GatewayStore {
	log = log.Named("ipfs")
	return &GatewayStore{
		apiURL: strings.TrimRight(apiURL, "/"),
		client: &http.Client{Timeout: 15 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "ipfs",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		}),
	}
}

type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

func (g *GatewayStore) Put(ctx context.Context, data []byte) (string, error) {
	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.add(ctx, data)
	})
	if err != nil {
		return "", fmt.Errorf("ipfs add: %w", err)
	}
	return out.(string), nil
}

func (g *GatewayStore) add(ctx context.Context, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "message.json")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/api/v0/add?cid-version=1", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var added addResponse
	if err := json.NewDecoder(resp.Body).Decode(&added); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	c, err := cid.Decode(added.Hash)
	if err != nil {
		return "", fmt.Errorf("gateway returned invalid cid %q: %w", added.Hash, err)
	}
	return c.String(), nil
}

func (g *GatewayStore) Get(ctx context.Context, id string) ([]byte, error) {
	c, err := cid.Decode(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, id)
	}
	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.cat(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("ipfs cat: %w", err)
	}
	return out.([]byte), nil
}

func (g *GatewayStore) cat(ctx context.Context, c cid.Cid) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/api/v0/cat?arg="+c.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return io.ReadAll(resp.Body)
}
