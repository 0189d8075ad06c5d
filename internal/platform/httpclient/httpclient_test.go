package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSON_RoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/echo" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" || r.Header.Get("X-Key") != "k" {
			t.Errorf("unexpected headers %v", r.Header)
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/v1/", time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var out struct {
		Echo string `json:"echo"`
	}
	if err := c.DoJSON(context.Background(), http.MethodPost, "echo", map[string]string{"X-Key": "k"}, map[string]string{"msg": "hi"}, &out); err != nil {
		t.Fatalf("do json: %v", err)
	}
	if out.Echo != "hi" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestDoJSON_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(" slow down \n"))
	}))
	defer ts.Close()

	c := New(time.Second)
	err := c.DoJSON(context.Background(), http.MethodGet, ts.URL, nil, nil, nil)

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusTooManyRequests || he.Body != "slow down" {
		t.Fatalf("unexpected error %+v", he)
	}
	if StatusOf(fmt.Errorf("wrapped: %w", err)) != http.StatusTooManyRequests {
		t.Fatalf("StatusOf should unwrap")
	}
	if StatusOf(errors.New("plain")) != 0 {
		t.Fatalf("StatusOf of plain error must be 0")
	}
}

func TestDoBytes_SendsRawBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if string(b) != "RIFF" || r.Header.Get("Content-Type") != "audio/webm" {
			t.Errorf("unexpected body=%q ct=%q", b, r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := New(time.Second)
	if err := c.DoBytes(context.Background(), http.MethodPost, ts.URL, nil, "audio/webm", []byte("RIFF"), nil); err != nil {
		t.Fatalf("do bytes: %v", err)
	}
}

func TestDoMultipart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		if r.FormValue("model") != "whisper-1" {
			t.Errorf("unexpected model %q", r.FormValue("model"))
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		if hdr.Filename != "audio.webm" || string(b) != "data" || hdr.Header.Get("Content-Type") != "audio/webm" {
			t.Errorf("unexpected file %q %q %q", hdr.Filename, b, hdr.Header.Get("Content-Type"))
		}
		_, _ = w.Write([]byte(`{"text":"woof"}`))
	}))
	defer ts.Close()

	c := New(time.Second)
	var out struct {
		Text string `json:"text"`
	}
	err := c.DoMultipart(context.Background(), ts.URL, nil, map[string]string{"model": "whisper-1"}, FilePart{
		Field:       "file",
		FileName:    "audio.webm",
		ContentType: "audio/webm",
		Data:        []byte("data"),
	}, &out)
	if err != nil {
		t.Fatalf("do multipart: %v", err)
	}
	if out.Text != "woof" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestResolveURL(t *testing.T) {
	c := New(time.Second)
	if _, err := c.resolveURL("/relative"); err == nil {
		t.Fatalf("relative path without BaseURL must fail")
	}
	if _, err := c.resolveURL("  "); err == nil {
		t.Fatalf("empty url must fail")
	}
	if _, err := NewWithBaseURL("not a url", time.Second); err == nil {
		t.Fatalf("invalid base url must fail")
	}

	var nilClient *Client
	if err := nilClient.DoJSON(context.Background(), http.MethodGet, "http://x", nil, nil, nil); err == nil {
		t.Fatalf("nil client must fail")
	}
}
