// Typed GoBarber endpoints over [APIService].
//
// Endpoint shapes follow the GoBarber REST API: sessions, users, password
// recovery, profile, provider availability and the provider's own agenda.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/shared"
)

// Client exposes one method per GoBarber API operation.
type Client struct {
	api *APIService
}

// NewClient creates a typed client over the given API service.
func NewClient(api *APIService) *Client {
	return &Client{api: api}
}

// SetDefaultHeader forwards to the underlying API service. The session store
// uses this to inject the bearer token for all subsequent requests.
func (c *Client) SetDefaultHeader(key, value string) {
	c.api.SetDefaultHeader(key, value)
}

// errorMessage digs the API's "message" field out of an error payload.
func errorMessage(resp *APIResponse) string {
	if resp.IsJSON {
		if data, ok := resp.JSONData.(map[string]any); ok {
			if msg, ok := data["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return string(resp.Body)
}

// checkStatus converts a non-2xx response into an error. No retry, no backoff.
func checkStatus(resp *APIResponse) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errorMessage(resp))
}

func decodeInto(resp *APIResponse, target any) error {
	if err := json.Unmarshal(resp.Body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CreateSession exchanges credentials for a token/user pair via POST /sessions.
func (c *Client) CreateSession(ctx context.Context, creds models.Credentials) (models.Session, error) {
	var session models.Session

	body, err := json.Marshal(creds)
	if err != nil {
		return session, fmt.Errorf("failed to encode credentials: %w", err)
	}

	resp, err := c.api.Post(ctx, "/sessions", body)
	if err != nil {
		return session, err
	}
	if err := checkStatus(resp); err != nil {
		return session, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if err := decodeInto(resp, &session); err != nil {
		return session, err
	}
	return session, nil
}

// CreateUser registers a new account via POST /users.
func (c *Client) CreateUser(ctx context.Context, reg models.Registration) (models.User, error) {
	var user models.User

	body, err := json.Marshal(reg)
	if err != nil {
		return user, fmt.Errorf("failed to encode registration: %w", err)
	}

	resp, err := c.api.Post(ctx, "/users", body)
	if err != nil {
		return user, err
	}
	if err := checkStatus(resp); err != nil {
		return user, err
	}

	if err := decodeInto(resp, &user); err != nil {
		return user, err
	}
	return user, nil
}

// ForgotPassword requests a recovery mail via POST /password/forgot.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.api.Post(ctx, "/password/forgot", body)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// ResetPassword redeems a recovery token via POST /password/reset.
func (c *Client) ResetPassword(ctx context.Context, token, password, confirmation string) error {
	body, err := json.Marshal(map[string]string{
		"token":                 token,
		"password":              password,
		"password_confirmation": confirmation,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.api.Post(ctx, "/password/reset", body)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// UpdateProfile updates the signed-in user's profile via PUT /profile and
// returns the fresh user record.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	var user models.User

	body, err := json.Marshal(update)
	if err != nil {
		return user, fmt.Errorf("failed to encode profile: %w", err)
	}

	resp, err := c.api.Put(ctx, "/profile", body)
	if err != nil {
		return user, err
	}
	if err := checkStatus(resp); err != nil {
		return user, err
	}

	if err := decodeInto(resp, &user); err != nil {
		return user, err
	}
	return user, nil
}

// UpdateAvatar uploads a new avatar via PATCH /users/avatar (multipart field
// "avatar") and returns the fresh user record.
func (c *Client) UpdateAvatar(ctx context.Context, filename string, data []byte) (models.User, error) {
	var user models.User

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("avatar", filename)
	if err != nil {
		return user, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return user, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return user, fmt.Errorf("failed to build upload: %w", err)
	}

	resp, err := c.api.Patch(ctx, "/users/avatar", buf.Bytes(), writer.FormDataContentType())
	if err != nil {
		return user, err
	}
	if err := checkStatus(resp); err != nil {
		return user, err
	}

	if err := decodeInto(resp, &user); err != nil {
		return user, err
	}
	return user, nil
}

// MonthAvailability fetches a provider's calendar for one month via
// GET /providers/:id/month-availability.
func (c *Client) MonthAvailability(ctx context.Context, providerID string, year, month int) ([]models.MonthDay, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))

	path := fmt.Sprintf("/providers/%s/month-availability?%s", url.PathEscape(providerID), query.Encode())

	resp, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var days []models.MonthDay
	if err := decodeInto(resp, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// DayAppointments fetches the signed-in provider's agenda for one day via
// GET /appointments/me.
func (c *Client) DayAppointments(ctx context.Context, day time.Time) ([]models.Appointment, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(day.Year()))
	query.Set("month", strconv.Itoa(int(day.Month())))
	query.Set("day", strconv.Itoa(day.Day()))

	resp, err := c.api.Get(ctx, "/appointments/me?"+query.Encode())
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var appointments []models.Appointment
	if err := decodeInto(resp, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}
