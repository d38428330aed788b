package anonchat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"comics/models"
)

var ErrNoIdentity = errors.New("no anonymous identity")

type SendOptions struct {
	Ephemeral     bool
	BurnAfterRead bool
	// ExpiresIn sets ExpiresAt relative to the send time. Only ephemeral
	// messages are removed once expired.
	ExpiresIn time.Duration
}

// Record is what gets stored in the blob store for each message.
type Record struct {
	Content       string `json:"content"`
	Sender        string `json:"senderAddress"`
	Receiver      string `json:"receiverAddress"`
	Timestamp     int64  `json:"timestamp"`
	Encoded       string `json:"encodedContent"`
	Ephemeral     bool   `json:"ephemeral"`
	BurnAfterRead bool   `json:"burnAfterRead"`
	ExpiresAt     *int64 `json:"expiresAt,omitempty"`
}

// Client holds one anonymous identity and sends messages as it.
type Client struct {
	blobs BlobStore
	clock clock.Clock

	mu       sync.Mutex
	identity *models.AnonymousIdentity
	issued   map[string]bool
}

func NewClient(blobs BlobStore, clk clock.Clock) *Client {
	return &Client{blobs: blobs, clock: clk, issued: make(map[string]bool)}
}

// GenerateIdentity replaces the current identity. A client never hands out
// the same pseudonym twice.
func (c *Client) GenerateIdentity() (models.AnonymousIdentity, error) {
	id, err := GenerateIdentity(c.clock.Now())
	if err != nil {
		return models.AnonymousIdentity{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for c.issued[id.Pseudonym] {
		id.Pseudonym = NewPseudonym()
	}
	c.issued[id.Pseudonym] = true
	c.identity = &id
	return id, nil
}

func (c *Client) Identity() (models.AnonymousIdentity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return models.AnonymousIdentity{}, false
	}
	return *c.identity, true
}

// restore puts back the identity GenerateIdentity replaced. ok false means
// there was none.
func (c *Client) restore(id models.AnonymousIdentity, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !ok {
		c.identity = nil
		return
	}
	c.identity = &id
}

// Forget drops the current identity.
func (c *Client) Forget() {
	c.mu.Lock()
	c.identity = nil
	c.mu.Unlock()
}

func (c *Client) UpdatePseudonym(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return ErrNoIdentity
	}
	c.identity.Pseudonym = name
	c.issued[name] = true
	return nil
}

// Send stores the message record in the blob store and returns the message
// as the sender sees it.
func (c *Client) Send(ctx context.Context, receiver, content string, opts SendOptions) (models.ChatMessage, error) {
	self, ok := c.Identity()
	if !ok {
		return models.ChatMessage{}, ErrNoIdentity
	}

	now := c.clock.Now()
	rec := Record{
		Content:       content,
		Sender:        self.Address,
		Receiver:      receiver,
		Timestamp:     now.UnixMilli(),
		Encoded:       Encode(content, receiver),
		Ephemeral:     opts.Ephemeral,
		BurnAfterRead: opts.BurnAfterRead,
	}
	var expiresAt *time.Time
	if opts.ExpiresIn > 0 {
		t := now.Add(opts.ExpiresIn)
		expiresAt = &t
		ms := t.UnixMilli()
		rec.ExpiresAt = &ms
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("encode message: %w", err)
	}
	contentID, err := c.blobs.Put(ctx, data)
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("store message: %w", err)
	}

	return models.ChatMessage{
		ID:            uuid.NewString(),
		Content:       content,
		Sender:        self.Address,
		Receiver:      receiver,
		Timestamp:     now,
		IsEphemeral:   opts.Ephemeral,
		BurnAfterRead: opts.BurnAfterRead,
		ExpiresAt:     expiresAt,
		ContentID:     contentID,
	}, nil
}

// ReadRecord fetches a stored message and checks that its encoded envelope
// agrees with the plain content and receiver.
func ReadRecord(ctx context.Context, blobs BlobStore, contentID string) (Record, error) {
	data, err := blobs.Get(ctx, contentID)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode message %s: %w", contentID, err)
	}
	content, receiver, err := Decode(rec.Encoded)
	if err != nil {
		return Record{}, err
	}
	if content != rec.Content || receiver != rec.Receiver {
		return Record{}, fmt.Errorf("%w: envelope does not match message %s", ErrMalformedEnvelope, contentID)
	}
	return rec, nil
}
