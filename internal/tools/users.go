package tools

import (
	"context"
	"fmt"

	"flightdesk/internal/booking"
)

// GetUserInfo fetches a user profile by name.
type GetUserInfo struct {
	store *booking.Store
}

func NewGetUserInfo(store *booking.Store) *GetUserInfo {
	return &GetUserInfo{store: store}
}

func (t *GetUserInfo) Name() string { return "get_user_info" }
func (t *GetUserInfo) Description() string {
	return "Fetch the user profile with the given name"
}

func (t *GetUserInfo) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type": "string",
			},
		},
		"required":             []string{"name"},
		"additionalProperties": false,
	}
}

func (t *GetUserInfo) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Name string `json:"name"`
	}
	if err := parseArgs(t.Name(), input, &args); err != nil {
		return "", err
	}

	user, err := t.store.UserByName(ctx, args.Name)
	if err != nil {
		return "", err
	}
	return asJSON(user)
}

// FileTicket escalates a request the agent cannot handle to a human.
type FileTicket struct {
	store *booking.Store
}

func NewFileTicket(store *booking.Store) *FileTicket {
	return &FileTicket{store: store}
}

func (t *FileTicket) Name() string { return "file_ticket" }
func (t *FileTicket) Description() string {
	return "File a customer support ticket for requests the agent cannot handle itself"
}

func (t *FileTicket) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"user_request": map[string]any{
				"type":        "string",
				"description": "The user's request, in their own words",
			},
			"user_name": map[string]any{
				"type":        "string",
				"description": "Name of the user filing the ticket",
			},
		},
		"required":             []string{"user_request", "user_name"},
		"additionalProperties": false,
	}
}

func (t *FileTicket) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		UserRequest string `json:"user_request"`
		UserName    string `json:"user_name"`
	}
	if err := parseArgs(t.Name(), input, &args); err != nil {
		return "", err
	}

	user, err := t.store.UserByName(ctx, args.UserName)
	if err != nil {
		return "", err
	}

	ticket, err := t.store.FileTicket(ctx, args.UserRequest, user)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Ticket %s filed.", ticket.TicketID), nil
}
