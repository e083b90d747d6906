package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindRecorder(t *testing.T, body string, req interface{}) (bool, map[string]map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	ok := bindJSON(c, req)
	if ok {
		return true, nil
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var out map[string]map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return false, out
}

func TestBindJSONReportsFieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		want  string
	}{
		{"missing title", `{"price": 3}`, "title", "This field is required"},
		{"blank title", `{"title": "   ", "price": 3}`, "title", "This field cannot be empty"},
		{"zero price", `{"title": "Rice", "price": 0}`, "price", "This field is required"},
		{"negative price", `{"title": "Rice", "price": -2}`, "price", "Must be greater than 0"},
		{"wrong type", `{"title": "Rice", "price": "cheap"}`, "price", "Field value must be of type float64"},
		{"not an object", `[1, 2]`, "body", "Request body must be a valid JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateMealRequest
			ok, out := bindRecorder(t, tt.body, &req)
			if ok {
				t.Fatal("expected bind failure")
			}
			if got := out["errors"][tt.field]; got != tt.want {
				t.Errorf("errors[%s] = %q, want %q (all: %v)", tt.field, got, tt.want, out["errors"])
			}
		})
	}
}

func TestBindJSONMenuRules(t *testing.T) {
	var req CreateMenuRequest
	ok, out := bindRecorder(t, `{"title": "Lunch", "date": "2026/10/19", "meals": [], "imageURL": "not a url"}`, &req)
	if ok {
		t.Fatal("expected bind failure")
	}
	want := map[string]string{
		"date":     "Incorrect date format, should be YYYY-MM-DD",
		"meals":    "Must contain at least 1 item(s)",
		"imageURL": "Must be a valid URL or path",
	}
	for field, msg := range want {
		if out["errors"][field] != msg {
			t.Errorf("errors[%s] = %q, want %q", field, out["errors"][field], msg)
		}
	}
}

func TestBindJSONAcceptsValidBody(t *testing.T) {
	var req PlaceOrderRequest
	ok, _ := bindRecorder(t, `{"menuId": 4, "meals": [1, 2], "orderCount": 2}`, &req)
	if !ok {
		t.Fatal("expected bind success")
	}
	if req.MenuID != 4 || len(req.Meals) != 2 || req.OrderCount == nil || *req.OrderCount != 2 {
		t.Errorf("req = %+v", req)
	}
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		raw    string
		want   uint
		wantOK bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"abc", 0, false},
		{"-3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			got, ok := paramID(c)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("paramID(%q) = %d, %v", tt.raw, got, ok)
			}
			if !ok && w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}
