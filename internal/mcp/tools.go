package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"journal/internal/domain"
	"journal/internal/domain/models/journal"
	journalSvc "journal/internal/domain/services/journal"
)

// entryResult is the JSON body returned by the entry tools
type entryResult struct {
	DateKey  string `json:"dateKey"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	ImageURL string `json:"imageUrl"`
}

func (s *Server) registerTools() {
	dateParam := mcp.WithString("date",
		mcp.Required(),
		mcp.Description("Calendar date of the entry, YYYY-MM-DD."),
	)

	s.mcpServer.AddTool(mcp.NewTool("get_entry",
		mcp.WithDescription("Returns the journal entry for a date."),
		dateParam,
	), s.getEntry)

	s.mcpServer.AddTool(mcp.NewTool("save_entry",
		mcp.WithDescription("Creates or replaces the journal entry for a date."),
		dateParam,
		mcp.WithString("title", mcp.Required(), mcp.Description("Entry title.")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Entry text.")),
		mcp.WithString("image_url", mcp.Description("Optional URL of an already uploaded image.")),
	), s.saveEntry)

	s.mcpServer.AddTool(mcp.NewTool("delete_entry",
		mcp.WithDescription("Deletes the journal entry for a date. Deleting a missing entry succeeds."),
		dateParam,
	), s.deleteEntry)
}

func (s *Server) getEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, errResult := dateArgument(request)
	if errResult != nil {
		return errResult, nil
	}

	entry, err := s.entries.GetEntry(ctx, key)
	if errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrRemote) {
		return mcp.NewToolResultError(fmt.Sprintf("No journal entry for %s.", key)), nil
	}
	if err != nil {
		s.logger.Error("get_entry failed", "date_key", key, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read entry: %v", err)), nil
	}
	return entryJSON(entry)
}

func (s *Server) saveEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, errResult := dateArgument(request)
	if errResult != nil {
		return errResult, nil
	}

	title, _ := request.Params.Arguments["title"].(string)
	content, _ := request.Params.Arguments["content"].(string)
	imageURL, _ := request.Params.Arguments["image_url"].(string)

	entry, err := s.entries.SaveEntry(ctx, &journalSvc.SaveEntryRequest{
		DateKey:  key,
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return mcp.NewToolResultError(validationErr.Message), nil
		}
		s.logger.Error("save_entry failed", "date_key", key, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save entry: %v", err)), nil
	}
	return entryJSON(entry)
}

func (s *Server) deleteEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, errResult := dateArgument(request)
	if errResult != nil {
		return errResult, nil
	}

	if err := s.entries.DeleteEntry(ctx, key); err != nil {
		s.logger.Error("delete_entry failed", "date_key", key, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted journal entry for %s.", key)), nil
}

// dateArgument parses the required date argument or returns a tool error
func dateArgument(request mcp.CallToolRequest) (journal.DateKey, *mcp.CallToolResult) {
	raw, ok := request.Params.Arguments["date"].(string)
	if !ok || raw == "" {
		return "", mcp.NewToolResultError("'date' parameter is required and must be a non-empty string.")
	}
	key, err := journal.ParseDateKey(raw)
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	return key, nil
}

func entryJSON(entry *journal.Entry) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(entryResult{
		DateKey:  entry.DateKey.String(),
		Title:    entry.Title,
		Content:  entry.Content,
		Date:     entry.Date,
		ImageURL: entry.ImageURL,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entry to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
