package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"regexp"
	"strings"
	"time"

	"snaplink/internal/entities"
	"snaplink/internal/models"
	"snaplink/internal/storage"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// URLService defines the interface for URL registry business logic
type URLService interface {
	Create(req *models.CreateURLRequest) (*entities.URL, error)
	Lookup(shortCode string) (*entities.URL, error)
	RecordClick(shortCode, referrer, userAgent string) error
	ListAll() []*entities.URL
	Delete(id string)
	Stats(shortCode string) (*entities.URL, error)
}

const (
	// Charset contains the 62 symbols generated short codes are drawn from
	Charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// CodeLength is the length of a generated short code
	CodeLength = 6
	// FallbackCodeLength is used for one last attempt after generation at
	// CodeLength keeps colliding
	FallbackCodeLength = 8

	maxGenerateAttempts = 10
)

var customCodePattern = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Short codes that would shadow routes served by this application
var reservedCodes = map[string]bool{
	"api":    true,
	"health": true,
	"auth":   true,
	"login":  true,
	"url":    true,
	"urls":   true,
	"logs":   true,
	"qrcode": true,
}

type urlService struct {
	store   storage.Store
	geo     GeoResolver
	baseURL string // default click referrer, the shortener's own origin
	logger  *zap.Logger
	now     func() time.Time
}

// NewURLService creates a new URL registry service
func NewURLService(store storage.Store, geo GeoResolver, baseURL string, logger *zap.Logger) URLService {
	return &urlService{
		store:   store,
		geo:     geo,
		baseURL: baseURL,
		logger:  logger,
		now:     time.Now,
	}
}

// validateOriginalURL checks that the destination is a well-formed
// absolute http(s) URL
func validateOriginalURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return &ValidationError{Reason: "URL is required"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return &ValidationError{Reason: "invalid URL format"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Reason: "URL must use http or https"}
	}

	return nil
}

// validateCustomShortCode validates a user-supplied short code
func (s *urlService) validateCustomShortCode(shortCode string) error {
	if len(shortCode) < 3 {
		return &ValidationError{Reason: "short code must be at least 3 characters long"}
	}
	if len(shortCode) > 20 {
		return &ValidationError{Reason: "short code must be at most 20 characters long"}
	}
	if !customCodePattern.MatchString(shortCode) {
		return &ValidationError{Reason: "short code can only contain letters, numbers, hyphens, and underscores"}
	}
	if reservedCodes[strings.ToLower(shortCode)] {
		return &ValidationError{Reason: fmt.Sprintf("short code '%s' is reserved and cannot be used", shortCode)}
	}

	// The collision check runs against every stored code, expired records
	// included: a code stays taken for the life of its record.
	if s.store.CodeInUse(shortCode) {
		return &ValidationError{Reason: fmt.Sprintf("short code '%s' is already taken", shortCode)}
	}

	return nil
}

// randomCode generates a code of the given length from Charset using a
// cryptographically secure source
func randomCode(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(Charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random code: %w", err)
		}
		b[i] = Charset[num.Int64()]
	}
	return string(b), nil
}

// generateUniqueCode produces a collision-free short code. Generation at
// CodeLength is retried a bounded number of times; if every attempt
// collides, one final code is drawn at FallbackCodeLength so the operation
// always terminates.
func (s *urlService) generateUniqueCode() (string, error) {
	var code string
	backoff := retry.WithMaxRetries(maxGenerateAttempts-1, retry.NewConstant(time.Millisecond))

	err := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		c, err := randomCode(CodeLength)
		if err != nil {
			return err
		}
		if s.store.CodeInUse(c) {
			return retry.RetryableError(errors.New("short code collision"))
		}
		code = c
		return nil
	})
	if err == nil {
		return code, nil
	}

	s.logger.Warn("short code generation exhausted retries, falling back to longer code",
		zap.Int("attempts", maxGenerateAttempts))

	code, rerr := randomCode(FallbackCodeLength)
	if rerr != nil {
		return "", rerr
	}
	if s.store.CodeInUse(code) {
		return "", fmt.Errorf("failed to generate unique short code after %d attempts", maxGenerateAttempts+1)
	}
	return code, nil
}

// Create validates the request, assigns a short code and persists a new
// URL record
func (s *urlService) Create(req *models.CreateURLRequest) (*entities.URL, error) {
	if err := validateOriginalURL(req.OriginalURL); err != nil {
		s.logger.Warn("rejected create request", zap.String("original_url", req.OriginalURL), zap.Error(err))
		return nil, err
	}

	if req.ValidUntilMinutes != nil && *req.ValidUntilMinutes < 0 {
		return nil, &ValidationError{Reason: "valid_until_minutes must not be negative"}
	}

	var shortCode string
	var customShortURL *string
	if req.CustomShortURL != nil && *req.CustomShortURL != "" {
		custom := strings.TrimSpace(*req.CustomShortURL)
		if err := s.validateCustomShortCode(custom); err != nil {
			s.logger.Warn("rejected custom short code", zap.String("short_code", custom), zap.Error(err))
			return nil, err
		}
		shortCode = custom
		customShortURL = &custom
	} else {
		code, err := s.generateUniqueCode()
		if err != nil {
			return nil, err
		}
		shortCode = code
	}

	now := s.now()

	// A positive duration sets the expiry; zero or absent means the record
	// never expires.
	var expiresAt *time.Time
	if req.ValidUntilMinutes != nil && *req.ValidUntilMinutes > 0 {
		t := now.Add(time.Duration(*req.ValidUntilMinutes) * time.Minute)
		expiresAt = &t
	}

	record := &entities.URL{
		ID:                uuid.NewString(),
		OriginalURL:       req.OriginalURL,
		ShortCode:         shortCode,
		CustomShortURL:    customShortURL,
		CreatedAt:         now,
		ExpiresAt:         expiresAt,
		ValidUntilMinutes: req.ValidUntilMinutes,
		ClickCount:        0,
		Clicks:            []entities.Click{},
	}

	s.store.Append(record)

	s.logger.Info("created shortened URL",
		zap.String("short_code", record.ShortCode),
		zap.String("original_url", record.OriginalURL))

	return record, nil
}

// Lookup resolves a short code to its record. Expired records are treated
// identically to absent ones at this boundary.
func (s *urlService) Lookup(shortCode string) (*entities.URL, error) {
	record, ok := s.store.FindByCode(shortCode)
	if !ok {
		s.logger.Warn("shortened URL not found", zap.String("short_code", shortCode))
		return nil, ErrNotFound
	}

	if record.Expired(s.now()) {
		s.logger.Warn("shortened URL has expired", zap.String("short_code", shortCode))
		return nil, ErrNotFound
	}

	return record, nil
}

// RecordClick appends a click event to the record behind shortCode and
// recomputes the click count. Resolution goes through Lookup, so an
// expired code fails here too.
func (s *urlService) RecordClick(shortCode, referrer, userAgent string) error {
	record, err := s.Lookup(shortCode)
	if err != nil {
		return err
	}

	if referrer == "" {
		referrer = s.baseURL
	}
	ip, location := s.geo.Resolve()

	click := entities.Click{
		Timestamp: s.now(),
		Referrer:  referrer,
		UserAgent: userAgent,
		IPAddress: ip,
		Location:  location,
	}

	// The append runs under the store's lock so clicks arriving on
	// concurrent requests never overwrite each other.
	var clickCount int
	s.store.Update(record.ID, func(u *entities.URL) {
		u.Clicks = append(u.Clicks, click)
		u.ClickCount = len(u.Clicks)
		clickCount = u.ClickCount
	})

	s.logger.Info("recorded click for shortened URL",
		zap.String("short_code", shortCode),
		zap.Int("click_count", clickCount))

	return nil
}

// ListAll returns every stored record regardless of expiration. This is
// the administrative view, so unlike Lookup it does no filtering.
func (s *urlService) ListAll() []*entities.URL {
	return s.store.LoadAll()
}

// Delete removes a record by id. Deleting an unknown id is a no-op.
func (s *urlService) Delete(id string) {
	s.store.Delete(id)
	s.logger.Info("deleted shortened URL", zap.String("id", id))
}

// Stats returns the record behind shortCode whether or not it has expired,
// for dashboard and statistics views.
func (s *urlService) Stats(shortCode string) (*entities.URL, error) {
	record, ok := s.store.FindByCode(shortCode)
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}
