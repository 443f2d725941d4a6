package credstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/unsplash-go/pkg/unsplash"
)

// ValkeyStore persists credentials using a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "unsplash"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	cmd := s.client.B().Get().Key(s.credKey(key)).Build()
	value, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key, value string) error {
	return s.client.Do(ctx, s.client.B().Set().Key(s.credKey(key)).Value(value).Build()).Error()
}

func (s *ValkeyStore) Clear(ctx context.Context, key string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.credKey(key)).Build()).Error()
}

func (s *ValkeyStore) credKey(key string) string {
	return fmt.Sprintf("%s:cred:%s", s.prefix, key)
}

var _ unsplash.CredentialStore = (*ValkeyStore)(nil)
