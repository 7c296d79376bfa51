package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type PracticeSession struct {
	ID              string `json:"id"`
	DurationSeconds int    `json:"durationSeconds"`
	SessionType     string `json:"sessionType"`
	WasCompleted    bool   `json:"wasCompleted"`
	CompletedAt     string `json:"completedAt"`
}

type UserStats struct {
	TotalMinutes    int    `json:"totalMinutes"`
	TotalSessions   int    `json:"totalSessions"`
	CurrentStreak   int    `json:"currentStreak"`
	LongestStreak   int    `json:"longestStreak"`
	LastSessionDate string `json:"lastSessionDate"`
}

type StatsResponse struct {
	Stats UserStats `json:"stats"`
}

type Achievement struct {
	Type       string `json:"achievementType"`
	Value      int    `json:"value"`
	UnlockedAt string `json:"unlockedAt"`
}

type DayBucket struct {
	Day      string `json:"day"`
	Date     string `json:"date"`
	Minutes  int    `json:"minutes"`
	Sessions int    `json:"sessions"`
}

// RegisterUser creates a new user and returns it with an access token
func (c *APIClient) RegisterUser(displayName string) (*User, string, error) {
	body := map[string]string{
		"displayName": displayName,
		"password":    "simulator-password-123",
	}

	var resp AuthResponse
	if err := c.post("/auth/register", "", body, &resp); err != nil {
		return nil, "", err
	}
	return &resp.User, resp.AccessToken, nil
}

// SubmitSession posts a practice session for the authenticated user
func (c *APIClient) SubmitSession(token string, durationSeconds int, sessionType string, completed bool) (*PracticeSession, error) {
	body := map[string]interface{}{
		"durationSeconds": durationSeconds,
		"sessionType":     sessionType,
		"soundsUsed":      []string{"rain"},
		"wasCompleted":    completed,
	}

	var session PracticeSession
	if err := c.post("/sessions", token, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetStats fetches the authenticated user's stats
func (c *APIClient) GetStats(token string) (*UserStats, error) {
	var resp StatsResponse
	if err := c.get("/stats", token, &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}

// GetAchievements fetches the authenticated user's unlocked achievements
func (c *APIClient) GetAchievements(token string) ([]Achievement, error) {
	var achievements []Achievement
	if err := c.get("/achievements", token, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

// GetWeeklyProgress fetches the current week's buckets
func (c *APIClient) GetWeeklyProgress(token string) ([]DayBucket, error) {
	var buckets []DayBucket
	if err := c.get("/progress/weekly", token, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

func (c *APIClient) post(path, token string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, out)
}

func (c *APIClient) get(path, token string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, out)
}

func (c *APIClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: %d: %s", req.Method, req.URL.Path, resp.StatusCode, bytes.TrimSpace(data))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
