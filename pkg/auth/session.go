// Package auth binds an externally authenticated user to a server-side
// session and exposes the user id to handlers.
//
// Session keys should be 32 or 64 bytes for HMAC authentication,
// and 16, 24, or 32 bytes for AES encryption. Production deployments
// must use cryptographically random keys generated with:
//
//	openssl rand -base64 32
package auth

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"github.com/rentrobe/rentrobe/pkg/cache"
)

// ErrUnsupportedValue is returned by Save when a session holds a key or value
// that is not a string. Sessions only carry identity strings.
var ErrUnsupportedValue = errors.New("session values must be strings")

// SessionOptions configures NewSessionStore.
type SessionOptions struct {
	AuthKey       []byte // HMAC key for the cookie
	EncryptionKey []byte // AES key for the cookie
	MaxAge        time.Duration
	// Secure limits the cookie to HTTPS; set in production.
	Secure bool
}

// RedisStore is a sessions.Store that keeps session values in a Redis hash
// and sends only the signed, encrypted session id to the client.
//
// Keys are "<namespace>:session:<id>". The TTL equals MaxAge and slides: every
// successful load pushes the expiry out again, so active users stay signed in.
type RedisStore struct {
	redis   *cache.RedisClient
	codecs  []securecookie.Codec
	options *sessions.Options
}

// NewSessionStore creates a Redis-backed session store. A non-positive MaxAge
// defaults to seven days.
func NewSessionStore(rc *cache.RedisClient, opts SessionOptions) *RedisStore {
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	return &RedisStore{
		redis:  rc,
		codecs: securecookie.CodecsFromPairs(opts.AuthKey, opts.EncryptionKey),
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(maxAge / time.Second),
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the named session, cached per request by the gorilla registry.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, tampered or
// expired cookie, or a session no longer in Redis, yields a fresh session
// without error. Redis failures are returned with a fresh session.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return session, nil
	}

	vals, err := s.load(r.Context(), id, session.Options.MaxAge)
	if err != nil {
		return session, err
	}
	if len(vals) == 0 {
		return session, nil
	}
	session.ID = id
	for k, v := range vals {
		session.Values[k] = v
	}
	session.IsNew = false
	return session, nil
}

// Save writes the session hash and the session cookie. MaxAge < 0 deletes
// both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.redis.Client().Del(r.Context(), s.key(session.ID)).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	fields, err := flatten(session.Values)
	if err != nil {
		return err
	}
	if session.ID == "" {
		session.ID = strings.TrimRight(
			base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)),
			"=",
		)
	}

	key := s.key(session.ID)
	_, err = s.redis.Client().TxPipelined(r.Context(), func(pipe redis.Pipeliner) error {
		pipe.Del(r.Context(), key)
		if len(fields) > 0 {
			pipe.HSet(r.Context(), key, fields...)
		}
		pipe.Expire(r.Context(), key, time.Duration(session.Options.MaxAge)*time.Second)
		return nil
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// load reads the session hash and refreshes its TTL in one round trip.
func (s *RedisStore) load(ctx context.Context, id string, maxAge int) (map[string]string, error) {
	key := s.key(id)
	var vals *redis.MapStringStringCmd
	_, err := s.redis.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		vals = pipe.HGetAll(ctx, key)
		pipe.Expire(ctx, key, time.Duration(maxAge)*time.Second)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return vals.Val(), nil
}

func (s *RedisStore) key(id string) string {
	return s.redis.Key("session", id)
}

// flatten turns session values into HSET field/value pairs.
func flatten(values map[any]any) ([]any, error) {
	out := make([]any, 0, 2*len(values))
	for k, v := range values {
		ks, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("%w: key %v", ErrUnsupportedValue, k)
		}
		vs, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T", ErrUnsupportedValue, ks, v)
		}
		out = append(out, ks, vs)
	}
	return out, nil
}
