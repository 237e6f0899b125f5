package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	config "github.com/nileshk/portfolio_backend/configs"
	"github.com/nileshk/portfolio_backend/scheduling"
)

// GoogleService creates Google Calendar events for confirmed bookings.
// Nil when not configured; the workflow then reports calendar as disabled.
type GoogleService struct {
	apiBase      string
	tokenURL     string
	calendarID   string
	clientID     string
	clientSecret string
	refreshToken string
	client       *http.Client
}

func NewGoogleService() *GoogleService {
	clientID := config.Config("GOOGLE_CLIENT_ID")
	clientSecret := config.Config("GOOGLE_CLIENT_SECRET")
	refreshToken := config.Config("GOOGLE_REFRESH_TOKEN")

	if clientID == "" || clientSecret == "" || refreshToken == "" {
		log.Println("⚠️ Google Calendar not configured. Missing client credentials or refresh token.")
		return nil
	}

	log.Println("✅ Google Calendar service initialized successfully.")
	return &GoogleService{
		apiBase:      config.ConfigDefault("GOOGLE_CALENDAR_API_BASE", "https://www.googleapis.com/calendar/v3"),
		tokenURL:     config.ConfigDefault("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),
		calendarID:   config.ConfigDefault("GOOGLE_CALENDAR_ID", "primary"),
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *GoogleService) getAccessToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"refresh_token": {s.refreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get access token, status: %s", resp.Status)
	}

	var tokenResp accessTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	return tokenResp.AccessToken, nil
}

type eventPayload struct {
	Summary     string         `json:"summary"`
	Description string         `json:"description,omitempty"`
	Start       eventTime      `json:"start"`
	End         eventTime      `json:"end"`
	Attendees   []attendee     `json:"attendees,omitempty"`
	Conference  *eventConfData `json:"conferenceData,omitempty"`
}

type eventTime struct {
	DateTime string `json:"dateTime"`
}

type attendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

type eventConfData struct {
	CreateRequest confCreateRequest `json:"createRequest"`
}

type confCreateRequest struct {
	RequestID string       `json:"requestId"`
	Solution  confSolution `json:"conferenceSolutionKey"`
}

type confSolution struct {
	Type string `json:"type"`
}

type eventResponse struct {
	ID             string `json:"id"`
	HTMLLink       string `json:"htmlLink"`
	HangoutLink    string `json:"hangoutLink"`
	ConferenceData *struct {
		EntryPoints []struct {
			EntryPointType string `json:"entryPointType"`
			URI            string `json:"uri"`
		} `json:"entryPoints"`
	} `json:"conferenceData"`
}

// CreateEvent inserts a calendar event with a Meet conference for the
// booked slot. The booking's timezone label resolves through the fixed
// offset table; conversion to an absolute instant happens here, not in the
// scheduling core.
func (s *GoogleService) CreateEvent(ctx context.Context, req scheduling.EventRequest) (*scheduling.EventResult, error) {
	start, err := SlotStartTime(req.Date, req.Time, req.Timezone)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	payload := eventPayload{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       eventTime{DateTime: start.Format(time.RFC3339)},
		End:         eventTime{DateTime: end.Format(time.RFC3339)},
		Attendees:   []attendee{{Email: req.AttendeeEmail, DisplayName: req.AttendeeName}},
		Conference: &eventConfData{
			CreateRequest: confCreateRequest{
				RequestID: uuid.NewString(),
				Solution:  confSolution{Type: "hangoutsMeet"},
			},
		},
	}

	accessToken, err := s.getAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("calendar auth failed: %w", err)
	}

	body, _ := json.Marshal(payload)
	endpoint := fmt.Sprintf("%s/calendars/%s/events?conferenceDataVersion=1", s.apiBase, url.PathEscape(s.calendarID))

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create calendar event: %s", string(respBody))
	}

	var event eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return nil, err
	}

	meetLink := event.HangoutLink
	if meetLink == "" && event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				meetLink = ep.URI
				break
			}
		}
	}

	return &scheduling.EventResult{
		EventID:  event.ID,
		EventURL: event.HTMLLink,
		MeetLink: meetLink,
	}, nil
}
