package cache

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RedisConfig captures the connection parameters for the Redis-backed Store.
type RedisConfig struct {
	Address  string
	Username string
	Password string
	DB       int
	TLS      bool
	Timeout  time.Duration
}

const defaultRedisTimeout = 5 * time.Second
const redisKeyPrefix = "vlockster:"

// RedisStore implements the Store interface over a single Redis connection.
// Only the commands this layer needs are spoken: AUTH, SELECT, PING, GET,
// SET (with PX), DEL and FLUSHDB. The store assumes exclusive ownership of
// the configured database index, which is what makes Clear safe to issue.
type RedisStore struct {
	cfg    RedisConfig
	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// NewRedisStore connects eagerly so misconfiguration surfaces at startup.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	cfg.Address = strings.TrimSpace(cfg.Address)
	if cfg.Address == "" {
		return nil, errors.New("redis: address is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRedisTimeout
	}

	store := &RedisStore{cfg: cfg}
	if err := store.ensureConnection(context.Background()); err != nil {
		return nil, err
	}
	if _, err := store.command(context.Background(), "PING"); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return store, nil
}

// Close closes the underlying network connection.
func (s *RedisStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		s.reader = nil
		return err
	}
	return nil
}

// Get retrieves the value associated with a key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp, err := s.command(ctx, "GET", redisKeyPrefix+key)
	if err != nil {
		return nil, false, err
	}

	switch v := resp.(type) {
	case nil:
		return nil, false, nil
	case []byte:
		return v, true, nil
	default:
		return nil, false, fmt.Errorf("redis: unexpected response type %T", v)
	}
}

// Set stores a value, letting Redis expire it after the TTL.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := []string{"SET", redisKeyPrefix + key, string(value)}
	if ttl > 0 {
		args = append(args, "PX", strconv.FormatInt(ttl.Milliseconds(), 10))
	}
	_, err := s.command(ctx, args...)
	return err
}

// Delete removes one or more keys, ignoring missing keys.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]string, 0, len(keys)+1)
	args = append(args, "DEL")
	for _, key := range keys {
		args = append(args, redisKeyPrefix+key)
	}
	_, err := s.command(ctx, args...)
	return err
}

// Clear flushes the owned database index.
func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := s.command(ctx, "FLUSHDB")
	return err
}

func (s *RedisStore) command(ctx context.Context, args ...string) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureConnectionLocked(ctx); err != nil {
		return nil, err
	}

	deadline := deadlineFromContext(ctx, s.cfg.Timeout)
	if err := s.conn.SetDeadline(deadline); err != nil {
		s.dropLocked()
		return nil, err
	}

	if err := writeCommand(s.conn, args); err != nil {
		s.dropLocked()
		return nil, err
	}

	resp, err := readReply(s.reader)
	if err != nil {
		s.dropLocked()
		return nil, err
	}

	return resp, nil
}

func (s *RedisStore) ensureConnection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ensureConnectionLocked(ctx)
}

func (s *RedisStore) ensureConnectionLocked(ctx context.Context) error {
	if s.conn != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var (
		conn net.Conn
		err  error
	)

	if s.cfg.TLS {
		dialer := &tls.Dialer{NetDialer: &net.Dialer{}}
		conn, err = dialer.DialContext(ctx, "tcp", s.cfg.Address)
	} else {
		dialer := &net.Dialer{}
		conn, err = dialer.DialContext(ctx, "tcp", s.cfg.Address)
	}
	if err != nil {
		return err
	}

	reader := bufio.NewReader(conn)
	if err := conn.SetDeadline(deadlineFromContext(ctx, s.cfg.Timeout)); err != nil {
		conn.Close()
		return err
	}

	if s.cfg.Password != "" || s.cfg.Username != "" {
		authArgs := []string{"AUTH"}
		if s.cfg.Username != "" {
			authArgs = append(authArgs, s.cfg.Username, s.cfg.Password)
		} else {
			authArgs = append(authArgs, s.cfg.Password)
		}
		if err := roundTrip(conn, reader, authArgs); err != nil {
			conn.Close()
			return fmt.Errorf("redis: AUTH: %w", err)
		}
	}

	if s.cfg.DB > 0 {
		if err := roundTrip(conn, reader, []string{"SELECT", strconv.Itoa(s.cfg.DB)}); err != nil {
			conn.Close()
			return fmt.Errorf("redis: SELECT: %w", err)
		}
	}

	// Clear deadlines; runtime commands set per-call deadlines.
	if err := conn.SetDeadline(time.Time{}); err != nil {
		conn.Close()
		return err
	}

	s.conn = conn
	s.reader = reader
	return nil
}

func (s *RedisStore) dropLocked() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.conn = nil
	s.reader = nil
}

// roundTrip issues a command during handshake and requires an OK reply.
func roundTrip(conn net.Conn, reader *bufio.Reader, args []string) error {
	if err := writeCommand(conn, args); err != nil {
		return err
	}
	resp, err := readReply(reader)
	if err != nil {
		return err
	}
	if str, ok := resp.(string); !ok || !strings.EqualFold(str, "OK") {
		return fmt.Errorf("unexpected reply %v", resp)
	}
	return nil
}

func deadlineFromContext(ctx context.Context, fallback time.Duration) time.Time {
	if deadline, ok := ctx.Deadline(); ok {
		return deadline
	}
	return time.Now().Add(fallback)
}

func writeCommand(conn net.Conn, args []string) error {
	var builder strings.Builder
	builder.WriteByte('*')
	builder.WriteString(strconv.Itoa(len(args)))
	builder.WriteString("\r\n")
	for _, arg := range args {
		builder.WriteByte('$')
		builder.WriteString(strconv.Itoa(len(arg)))
		builder.WriteString("\r\n")
		builder.WriteString(arg)
		builder.WriteString("\r\n")
	}
	_, err := conn.Write([]byte(builder.String()))
	return err
}

func readReply(r *bufio.Reader) (interface{}, error) {
	prefix, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch prefix {
	case '+':
		return readLine(r)
	case '-':
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		return nil, errors.New(line)
	case ':':
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		return strconv.ParseInt(line, 10, 64)
	case '$':
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		length, err := strconv.Atoi(line)
		if err != nil {
			return nil, err
		}
		if length == -1 {
			return nil, nil
		}
		buf := make([]byte, length+2) // payload plus trailing CRLF
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		if buf[length] != '\r' || buf[length+1] != '\n' {
			return nil, errors.New("redis: malformed bulk reply")
		}
		return buf[:length], nil
	default:
		return nil, fmt.Errorf("redis: unexpected prefix %q", prefix)
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
