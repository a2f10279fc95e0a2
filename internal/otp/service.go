package otp

import (
	"context"
	"strings"
	"time"

	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/metrics"
	"github.com/r70610363/swiftcart-backend/pkg/security"
	"github.com/r70610363/swiftcart-backend/pkg/upstream"
)

// Service issues and verifies one-time login codes. A code is bound to one
// mobile number, expires after the configured TTL and is consumed by the
// first successful verification. Expiry and mismatch are distinct failures.
type Service interface {
	Send(ctx context.Context, mobile string) (string, error)
	Verify(ctx context.Context, mobile, code string) error
}

type service struct {
	challenges ChallengeStore
	upstream   *upstream.Client
	logg       *logger.Logger
	metrics    *metrics.StorefrontMetrics
	otpCfg     config.OTPConfig
	secCfg     config.SecurityConfig
	now        func() time.Time
}

func NewService(challenges ChallengeStore, up *upstream.Client, otpCfg config.OTPConfig, secCfg config.SecurityConfig, logg *logger.Logger, met *metrics.StorefrontMetrics) (Service, error) {
	if challenges == nil {
		return nil, errors.New(errors.CodeInternal, "otp service requires a challenge store")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "otp service requires a logger")
	}
	return &service{
		challenges: challenges,
		upstream:   up,
		logg:       logg,
		metrics:    met,
		otpCfg:     otpCfg,
		secCfg:     secCfg,
		now:        time.Now,
	}, nil
}

// Send issues a fresh code for the mobile number, replacing any outstanding
// one. With an upstream configured the backend delivers the SMS; otherwise a
// simulated code is generated locally and surfaced in the debug log only.
func (s *service) Send(ctx context.Context, mobile string) (string, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return "", errors.New(errors.CodeValidation, "mobile number is required")
	}

	if s.upstream != nil && s.upstream.Enabled() {
		if err := s.upstream.SendOTP(ctx, mobile); err == nil {
			return "OTP has been sent to " + mobile, nil
		} else {
			s.metrics.IncFallback("otp.send")
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "upstream otp delivery failed, issuing simulated code")
		}
	}

	code, err := security.GenerateCode(s.otpCfg.Digits)
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "generate otp code")
	}
	hash, err := security.HashCode(code, s.secCfg)
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "hash otp code")
	}

	ch := challenge{Hash: hash, ExpiresAt: s.now().Add(s.otpCfg.TTL)}
	if err := s.challenges.Put(ctx, mobile, ch); err != nil {
		return "", err
	}

	// Simulation only: a real deployment delivers over SMS and never logs
	// the code.
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{"mobile": mobile, "code": code}), "simulated otp issued")
	return "OTP has been sent to " + mobile, nil
}

// Verify checks the submitted code. Success consumes the challenge so the
// code cannot be replayed; an expired challenge is also consumed. A mismatch
// leaves the challenge in place for another attempt.
func (s *service) Verify(ctx context.Context, mobile, code string) error {
	mobile = strings.TrimSpace(mobile)
	code = strings.TrimSpace(code)
	if mobile == "" || code == "" {
		return errors.New(errors.CodeValidation, "mobile number and code are required")
	}

	if s.upstream != nil && s.upstream.Enabled() {
		ok, message, err := s.upstream.VerifyOTP(ctx, mobile, code)
		if err == nil {
			if !ok {
				return errors.New(errors.CodeUnauthorized, orMessage(message, "Invalid OTP"))
			}
			return nil
		}
		s.metrics.IncFallback("otp.verify")
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "upstream otp verification failed, checking local challenge")
	}

	ch, found, err := s.challenges.Get(ctx, mobile)
	if err != nil {
		return err
	}
	if !found {
		return errors.New(errors.CodeUnauthorized, "No OTP was sent to this number")
	}
	if s.now().After(ch.ExpiresAt) {
		if err := s.challenges.Delete(ctx, mobile); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "mobile", mobile), "expired otp challenge not removed")
		}
		return errors.New(errors.CodeUnauthorized, "OTP has expired")
	}

	match, err := security.VerifyCode(code, ch.Hash)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "verify otp code")
	}
	if !match {
		return errors.New(errors.CodeUnauthorized, "Invalid OTP")
	}

	if err := s.challenges.Delete(ctx, mobile); err != nil {
		return err
	}
	return nil
}

func orMessage(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
