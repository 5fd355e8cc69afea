package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/organmatch/matching-service/internal/api/metrics"
	"github.com/organmatch/matching-service/internal/core/domain"
)

const (
	DefaultBaseURL = "https://api.twilio.com"
	sendTimeout    = 10 * time.Second
)

// SMSConfig holds the Twilio account used as sender.
type SMSConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	// BaseURL overrides the API host; empty means DefaultBaseURL.
	BaseURL string
}

// SMS sends "Match found for <organ> donation!" through the Twilio Messages
// API. Failures are logged at debug level and counted, never returned.
type SMS struct {
	from   string
	api    *twilioapi.ApiService
	logger zerolog.Logger
}

func NewSMS(cfg SMSConfig, logger zerolog.Logger) *SMS {
	httpClient := &http.Client{Timeout: sendTimeout}
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" && base != DefaultBaseURL {
		if u, err := url.Parse(base); err == nil && u.Host != "" {
			httpClient.Transport = hostRewrite{scheme: u.Scheme, host: u.Host, next: http.DefaultTransport}
		}
	}

	c := &twclient.Client{
		Credentials: twclient.NewCredentials(cfg.AccountSID, cfg.AuthToken),
		HTTPClient:  httpClient,
	}
	c.SetAccountSid(cfg.AccountSID)

	rest := twilio.NewRestClientWithParams(twilio.ClientParams{Client: c})

	return &SMS{
		from:   cfg.From,
		api:    rest.Api,
		logger: logger,
	}
}

func (s *SMS) Notify(_ context.Context, match domain.User) {
	if err := s.send(match.Phone, MessageFor(match)); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		s.logger.Debug().
			Err(err).
			Int64("user_id", match.ID).
			Msg("match notification not delivered")
		return
	}
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
}

// MessageFor renders the SMS body for a matched user.
func MessageFor(match domain.User) string {
	return fmt.Sprintf("Match found for %s donation!", match.Organ)
}

func (s *SMS) send(to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.api.CreateMessage(params); err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	return nil
}

// hostRewrite points the SDK's fixed API host at TWILIO_BASE_URL.
type hostRewrite struct {
	scheme string
	host   string
	next   http.RoundTripper
}

func (h hostRewrite) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = h.scheme
	r.URL.Host = h.host
	r.Host = h.host
	return h.next.RoundTrip(r)
}
