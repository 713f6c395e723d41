package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/frontboat/death-mountain-sub001/internal/db"
	"github.com/frontboat/death-mountain-sub001/internal/dispatch"
	"github.com/frontboat/death-mountain-sub001/internal/schema"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

const testAdventurer = "1337"

// newTestServer creates a server backed by a temporary database
func newTestServer(t *testing.T, secret string) *Server {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return NewServer(Options{
		DB:               database,
		RecentEventLimit: 20,
		RateLimitRPS:     1000,
		RateLimitBurst:   1000,
		JWTSecret:        secret,
	})
}

func gameLog(id string, actionCount, tag int, payload ...int) dispatch.RawLog {
	data := []string{strconv.Itoa(actionCount), strconv.Itoa(tag)}
	for _, v := range payload {
		data = append(data, strconv.Itoa(v))
	}
	return dispatch.RawLog{
		Keys: []string{wire.Selector(schema.EnvelopeComponent).Hex(), id},
		Data: data,
	}
}

// adventurerLog is a snapshot with health 50, gold 60, vitality 2, three
// upgrades and weapon 46 equipped.
func adventurerLog(id string, actionCount int) dispatch.RawLog {
	payload := []int{50, 10, 60, 0, 3}
	payload = append(payload, 0, 0, 2, 0, 0, 0, 0)
	payload = append(payload, 46, 0)
	payload = append(payload, make([]int, 14)...)
	payload = append(payload, 0, actionCount)
	return gameLog(id, actionCount, 0, payload...)
}

func doJSON(t *testing.T, s *Server, method, path string, body any, token string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var resp Response
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

// dataAs re-decodes a response's data field into out
func dataAs(t *testing.T, resp Response, out any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}
