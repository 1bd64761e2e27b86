// Package calendar mirrors events from Google Calendar.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"focusboard/internal/model"
)

const (
	primaryCalendar = "primary"
	fetchDays       = 30
	revokeURL       = "https://oauth2.googleapis.com/revoke"
)

var (
	ErrNotConnected      = errors.New("google calendar is not connected")
	ErrReconnectRequired = errors.New("google calendar token expired, reconnect required")
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Location     *time.Location
}

// Client talks to the Google Calendar API on behalf of the owner.
type Client struct {
	oauth *oauth2.Config
	loc   *time.Location
	http  *http.Client
	log   zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{gcal.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		loc:  loc,
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

// AuthURL is the consent page the owner opens to connect.
func (c *Client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Connect exchanges an authorization code for tokens.
func (c *Client) Connect(ctx context.Context, code string) (model.CalendarAuth, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return model.CalendarAuth{}, fmt.Errorf("exchange code: %w", err)
	}
	auth := authFromToken(model.CalendarAuth{}, tok)
	auth.IsConnected = true

	svc, err := c.service(ctx, tok)
	if err != nil {
		return model.CalendarAuth{}, err
	}
	primary, err := svc.CalendarList.Get(primaryCalendar).Context(ctx).Do()
	if err != nil {
		c.log.Warn().Err(err).Msg("read primary calendar id")
	} else {
		auth.UserEmail = primary.Id
	}
	return auth, nil
}

// Disconnect revokes the stored token. Revocation failures are returned but
// the caller forgets the connection either way.
func (c *Client) Disconnect(ctx context.Context, auth model.CalendarAuth) error {
	token := auth.RefreshToken
	if token == "" {
		token = auth.AccessToken
	}
	if token == "" {
		return nil
	}
	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke token: unexpected status %s", resp.Status)
	}
	return nil
}

// FetchEvents lists primary calendar events for the next 30 days. An
// expired access token is refreshed once; the refreshed credentials are
// returned so the caller can store them.
func (c *Client) FetchEvents(ctx context.Context, auth model.CalendarAuth) ([]model.Event, model.CalendarAuth, error) {
	if !auth.IsConnected || (auth.AccessToken == "" && auth.RefreshToken == "") {
		return nil, auth, ErrNotConnected
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	fresh, err := c.oauth.TokenSource(ctx, tokenFromAuth(auth)).Token()
	if err != nil {
		return nil, auth, fmt.Errorf("%w: %v", ErrReconnectRequired, err)
	}
	auth = authFromToken(auth, fresh)

	svc, err := c.service(ctx, fresh)
	if err != nil {
		return nil, auth, err
	}

	now := time.Now().In(c.loc)
	res, err := svc.Events.List(primaryCalendar).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, fetchDays).Format(time.RFC3339)).
		ShowDeleted(false).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, auth, fmt.Errorf("list events: %w", err)
	}

	events := make([]model.Event, 0, len(res.Items))
	for _, item := range res.Items {
		if ev, ok := ConvertEvent(item, c.loc); ok {
			events = append(events, ev)
		}
	}
	return events, auth, nil
}

func (c *Client) service(ctx context.Context, tok *oauth2.Token) (*gcal.Service, error) {
	svc, err := gcal.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(tok)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return svc, nil
}

func tokenFromAuth(auth model.CalendarAuth) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		TokenType:    auth.TokenType,
	}
	if auth.TokenExpiry != nil {
		tok.Expiry = *auth.TokenExpiry
	}
	return tok
}

func authFromToken(auth model.CalendarAuth, tok *oauth2.Token) model.CalendarAuth {
	auth.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		auth.RefreshToken = tok.RefreshToken
	}
	auth.TokenType = tok.TokenType
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		auth.TokenExpiry = &expiry
	}
	return auth
}
