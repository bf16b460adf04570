package backend

import (
	"context"
	"net/http"
)

// UserStatus - признак студента ПетрГУ и группа
type UserStatus struct {
	IsPetrSUStudent bool   `json:"is_petrsu_student"`
	Group           string `json:"group"`
}

type userRequest struct {
	TelegramID      int64  `json:"telegram_id"`
	IsPetrSUStudent bool   `json:"is_petrsu_student"`
	Group           string `json:"group"`
}

func (c *Client) CheckUser(ctx context.Context, telegramID int64) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := c.get(ctx, "/check_user", idQuery("telegram_id", telegramID), &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *Client) UserID(ctx context.Context, telegramID int64) (int64, error) {
	var resp struct {
		UserID int64 `json:"user_id"`
	}
	if err := c.get(ctx, "/get_user_id", idQuery("telegram_id", telegramID), &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

func (c *Client) UserStatus(ctx context.Context, telegramID int64) (*UserStatus, error) {
	var resp UserStatus
	if err := c.get(ctx, "/check_is_petrsu_student", idQuery("telegram_id", telegramID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddUser(ctx context.Context, telegramID int64, isPetrSUStudent bool, group string) error {
	return c.send(ctx, http.MethodPost, "/add_user", userRequest{
		TelegramID:      telegramID,
		IsPetrSUStudent: isPetrSUStudent,
		Group:           group,
	}, nil)
}

func (c *Client) ChangeUserGroup(ctx context.Context, telegramID int64, group string) error {
	return c.send(ctx, http.MethodPost, "/change_user_group", map[string]any{
		"telegram_id": telegramID,
		"group":       group,
	}, nil)
}

func (c *Client) ChangeUserStatus(ctx context.Context, telegramID int64, isPetrSUStudent bool, group string) error {
	return c.send(ctx, http.MethodPost, "/change_user_status", userRequest{
		TelegramID:      telegramID,
		IsPetrSUStudent: isPetrSUStudent,
		Group:           group,
	}, nil)
}

func (c *Client) UserGroup(ctx context.Context, telegramID int64) (string, error) {
	var resp struct {
		Group string `json:"group"`
	}
	err := c.get(ctx, "/get_user_group", idQuery("telegram_id", telegramID), &resp)
	return resp.Group, err
}
