package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondError_ProblemDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadGateway, "write entry: boom")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["title"] != "Bad Gateway" || body["detail"] != "write entry: boom" || body["status"] != float64(502) {
		t.Errorf("body = %v", body)
	}
	if !strings.Contains(body["type"].(string), "section-6.6.3") {
		t.Errorf("type = %v", body["type"])
	}
}

func TestRespondErrorWithExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusConflict, "unsaved changes", map[string]interface{}{"session_id": "abc"})

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["session_id"] != "abc" {
		t.Errorf("extras not flattened: %v", body)
	}
}

func TestOptionalString(t *testing.T) {
	var req struct {
		Title   OptionalString `json:"title"`
		Content OptionalString `json:"content"`
	}
	if err := json.Unmarshal([]byte(`{"title":"Day One","content":null}`), &req); err != nil {
		t.Fatal(err)
	}
	if !req.Title.Present || req.Title.Value == nil || *req.Title.Value != "Day One" {
		t.Errorf("title = %+v", req.Title)
	}
	if !req.Content.Present || req.Content.Value != nil {
		t.Errorf("content = %+v", req.Content)
	}

	var absent struct {
		Title OptionalString `json:"title"`
	}
	_ = json.Unmarshal([]byte(`{}`), &absent)
	if absent.Title.Present {
		t.Error("absent field should not be Present")
	}
}

func TestParseJSON_UnknownField(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","bogus":1}`))

	var dest struct {
		Title string `json:"title"`
	}
	if err := ParseJSON(rec, req, &dest); err == nil {
		t.Error("ParseJSON() should reject unknown fields")
	}
}

func TestUserIDContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUserID(req) != "" {
		t.Error("empty context should have no user")
	}
	if got := GetUserID(WithUserID(req, "u-1")); got != "u-1" {
		t.Errorf("GetUserID() = %q", got)
	}
}

func TestOptionalString_Get(t *testing.T) {
	s := "x"
	tests := []struct {
		in     OptionalString
		want   string
		wantOK bool
	}{
		{OptionalString{}, "", false},
		{OptionalString{Present: true}, "", true},
		{OptionalString{Present: true, Value: &s}, "x", true},
	}
	for _, tt := range tests {
		got, ok := tt.in.Get()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Get() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
		}
	}
}
