package nostr

import (
	"encoding/json"
	"fmt"
	"time"

	"strike-connect/internal/core/domain"

	gonostr "github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip04"
)

// Codec implements ports.EnvelopeCodec with NIP-04 encryption under the
// secret shared by the service key and the connection key.
type Codec struct {
	sharedKey   []byte
	servicePriv string
	servicePub  string
	recipient   string
	now         func() time.Time
}

// NewCodec derives the shared secret. Responses are signed by the service
// key and tagged for recipient.
func NewCodec(servicePrivkey, connectionSecret, recipient string) (*Codec, error) {
	servicePub, err := gonostr.GetPublicKey(servicePrivkey)
	if err != nil {
		return nil, fmt.Errorf("deriving service pubkey: %w", err)
	}
	// ECDH(connection, service) == ECDH(service, connection).
	sharedKey, err := nip04.ComputeSharedSecret(servicePub, connectionSecret)
	if err != nil {
		return nil, fmt.Errorf("computing shared secret: %w", err)
	}
	return &Codec{
		sharedKey:   sharedKey,
		servicePriv: servicePrivkey,
		servicePub:  servicePub,
		recipient:   recipient,
		now:         time.Now,
	}, nil
}

// ServicePubkey is the key responses are authored by.
func (c *Codec) ServicePubkey() string {
	return c.servicePub
}

// Decrypt fails on any decryption or parse error. Malformed ciphertext can
// panic inside the cipher, which is reported as an error too.
func (c *Codec) Decrypt(content string) (req *domain.Request, err error) {
	defer func() {
		if r := recover(); r != nil {
			req, err = nil, fmt.Errorf("decrypting content: %v", r)
		}
	}()

	plain, err := nip04.Decrypt(content, c.sharedKey)
	if err != nil {
		return nil, fmt.Errorf("decrypting content: %w", err)
	}

	var r domain.Request
	if err := json.Unmarshal([]byte(plain), &r); err != nil {
		return nil, fmt.Errorf("parsing request: %w", err)
	}
	return &r, nil
}

// EncryptAndSign builds a kind 23195 event referencing requestID.
func (c *Codec) EncryptAndSign(resp *domain.Response, requestID string) (*domain.SignedEvent, error) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}
	content, err := nip04.Encrypt(string(payload), c.sharedKey)
	if err != nil {
		return nil, fmt.Errorf("encrypting response: %w", err)
	}

	ev := gonostr.Event{
		PubKey:    c.servicePub,
		CreatedAt: gonostr.Timestamp(c.now().Unix()),
		Kind:      domain.KindWalletResponse,
		Tags: gonostr.Tags{
			{"p", c.recipient},
			{"e", requestID},
		},
		Content: content,
	}
	if err := ev.Sign(c.servicePriv); err != nil {
		return nil, fmt.Errorf("signing response: %w", err)
	}
	return toSignedEvent(&ev), nil
}

func toSignedEvent(ev *gonostr.Event) *domain.SignedEvent {
	tags := make([][]string, len(ev.Tags))
	for i, t := range ev.Tags {
		tags[i] = append([]string(nil), t...)
	}
	return &domain.SignedEvent{
		ID:        ev.ID,
		PubKey:    ev.PubKey,
		CreatedAt: int64(ev.CreatedAt),
		Kind:      ev.Kind,
		Tags:      tags,
		Content:   ev.Content,
		Sig:       ev.Sig,
	}
}

func fromSignedEvent(ev *domain.SignedEvent) gonostr.Event {
	tags := make(gonostr.Tags, len(ev.Tags))
	for i, t := range ev.Tags {
		tags[i] = gonostr.Tag(append([]string(nil), t...))
	}
	return gonostr.Event{
		ID:        ev.ID,
		PubKey:    ev.PubKey,
		CreatedAt: gonostr.Timestamp(ev.CreatedAt),
		Kind:      ev.Kind,
		Tags:      tags,
		Content:   ev.Content,
		Sig:       ev.Sig,
	}
}
