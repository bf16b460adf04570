// Package petrsu - клиент публичного API расписания ПетрГУ
package petrsu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://petrsu.egipti.com/api/v2"

// Lesson - пара из расписания группы
type Lesson struct {
	Title    string `json:"title"`
	Lecturer string `json:"lecturer"`
	Type     string `json:"type"`
	Date     string `json:"date"`
}

// Schedule - расписание по знаменателю и числителю, списки пар по дням
type Schedule struct {
	Denominator [][]Lesson `json:"denominator"`
	Numerator   [][]Lesson `json:"numerator"`
}

// Lessons возвращает все пары обеих недель
func (s *Schedule) Lessons() []Lesson {
	var all []Lesson
	for _, week := range [][][]Lesson{s.Denominator, s.Numerator} {
		for _, day := range week {
			all = append(all, day...)
		}
	}
	return all
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Groups возвращает множество номеров групп
func (c *Client) Groups(ctx context.Context) (map[string]struct{}, error) {
	var raw map[string]json.RawMessage
	if err := c.get(ctx, "/groups", &raw); err != nil {
		return nil, err
	}
	groups := make(map[string]struct{}, len(raw))
	for g := range raw {
		groups[g] = struct{}{}
	}
	return groups, nil
}

// GroupExists проверяет номер группы по списку групп ПетрГУ
func (c *Client) GroupExists(ctx context.Context, group string) (bool, error) {
	groups, err := c.Groups(ctx)
	if err != nil {
		return false, err
	}
	_, ok := groups[strings.TrimSpace(group)]
	return ok, nil
}

func (c *Client) Schedule(ctx context.Context, group string) (*Schedule, error) {
	var s Schedule
	if err := c.get(ctx, "/schedule/"+url.PathEscape(group), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("petrsu %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("PetrSU API returned error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return &StatusError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode petrsu %s: %w", path, err)
	}
	return nil
}

// StatusError - API расписания ответил не 200
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Сервис расписания ПетрГУ недоступен (код %d)", e.Status)
}

// Disciplines возвращает отсортированные уникальные названия предметов
func Disciplines(s *Schedule) []string {
	return unique(s, func(l Lesson) string { return l.Title })
}

// Lecturers возвращает отсортированный список уникальных непустых имён преподавателей
func Lecturers(s *Schedule) []string {
	return unique(s, func(l Lesson) string { return l.Lecturer })
}

func unique(s *Schedule, field func(Lesson) string) []string {
	seen := make(map[string]struct{})
	for _, l := range s.Lessons() {
		v := strings.TrimSpace(field(l))
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Exclude убирает из names уже существующие значения
func Exclude(names []string, existing []string) []string {
	skip := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		skip[e] = struct{}{}
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := skip[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}
