package http

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"logistics/internal/pkg/logger"
	pkgredis "logistics/internal/pkg/redis"

	"github.com/labstack/echo/v4"
)

const (
	HeaderIdempotencyKey   = "Idempotency-Key"
	HeaderIdempotentReplay = "Idempotent-Replay"

	defaultIdempotencyTTL = 24 * time.Hour
	maxIdempotencyKeyLen  = 128
)

// IdempotencyStore is the subset of the redis client the guard needs.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	IdempotencyKey(scope, id string) string
}

type idempotencyRecord struct {
	Status      int               `json:"status"`
	Body        string            `json:"body"`
	Headers     map[string]string `json:"headers,omitempty"`
	RequestHash string            `json:"request_hash"`
}

// Idempotency replays the stored response of a POST carrying an Idempotency-Key
// header. The key is scoped to the caller and the path; reusing it with another body
// is a conflict. Requests without the header, and all requests when store is nil,
// pass through.
func Idempotency(store IdempotencyStore, ttl time.Duration, logg *logger.Logger) echo.MiddlewareFunc {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if store == nil || req.Method != http.MethodPost {
				return next(c)
			}
			idempotencyKey := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if idempotencyKey == "" {
				return next(c)
			}
			if len(idempotencyKey) > maxIdempotencyKeyLen {
				return newError(CodeValidation, "Idempotency-Key header is too long")
			}

			body, err := io.ReadAll(req.Body)
			if err != nil {
				return wrapError(CodeValidation, err, "read request body")
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			requestHash := hashBody(body)
			key := store.IdempotencyKey(buildScope(c), idempotencyKey)

			stored, err := store.Get(req.Context(), key)
			if err != nil && !pkgredis.IsMiss(err) {
				return wrapError(CodeInternal, err, "check idempotency")
			}
			if stored != "" {
				record, decodeErr := decodeRecord(stored)
				if decodeErr != nil {
					return wrapError(CodeInternal, decodeErr, "decode idempotency record")
				}
				if record.RequestHash != requestHash {
					return newError(CodeConflict, "idempotency key reused with different request body").
						withDetails(map[string]string{"kind": "idempotency_key_reused"})
				}
				return writeStoredResponse(c, record)
			}

			capture := &responseCapture{ResponseWriter: c.Response().Writer}
			c.Response().Writer = capture
			handlerErr := next(c)
			if handlerErr != nil {
				// Let the error handler write through the capture before recording.
				c.Error(handlerErr)
			}

			status := c.Response().Status
			if status >= http.StatusInternalServerError {
				return nil
			}

			record := idempotencyRecord{
				Status:      status,
				Body:        base64.StdEncoding.EncodeToString(capture.body.Bytes()),
				RequestHash: requestHash,
			}
			if ct := c.Response().Header().Get(echo.HeaderContentType); ct != "" {
				record.Headers = map[string]string{echo.HeaderContentType: ct}
			}

			payload, err := json.Marshal(record)
			if err != nil {
				logError(req.Context(), logg, "marshal idempotency record", err)
				return nil
			}
			if _, err = store.SetNX(req.Context(), key, string(payload), ttl); err != nil {
				logError(req.Context(), logg, "persist idempotency record", err)
			}
			return nil
		}
	}
}

func buildScope(c echo.Context) string {
	subject := ""
	if actor, err := actorFrom(c); err == nil {
		subject = actor.Subject()
	}
	return strings.Join([]string{subject, c.Request().Method, c.Request().URL.Path}, "|")
}

func decodeRecord(payload string) (*idempotencyRecord, error) {
	var record idempotencyRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func writeStoredResponse(c echo.Context, record *idempotencyRecord) error {
	decoded, err := base64.StdEncoding.DecodeString(record.Body)
	if err != nil {
		return wrapError(CodeInternal, err, "decode idempotency record")
	}
	contentType := record.Headers[echo.HeaderContentType]
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	c.Response().Header().Set(HeaderIdempotentReplay, "true")
	return c.Blob(record.Status, contentType, decoded)
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}

type responseCapture struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *responseCapture) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *responseCapture) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("response writer does not support hijacking")
}

func logError(ctx context.Context, logg *logger.Logger, msg string, err error) {
	if logg == nil || err == nil {
		return
	}
	logg.Error(ctx, msg, err)
}
