package upload_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/setanarut/huescore"
	"github.com/setanarut/huescore/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collector(t *testing.T, token string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/upload" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"error": "not found"})
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":"Unauthorized"}`)
			return
		}
		var p upload.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.ImageID == "" || len(p.Colors) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"error": "Missing required fields: image_id, colors"})
			return
		}
		if p.ImageID == "broken" {
			w.WriteHeader(http.StatusOK)
			io.WriteString(w, `{"ok":false,"error":"database unavailable"}`)
			return
		}
		io.WriteString(w, `{"ok":true,"image_id":"`+p.ImageID+`","message":"Color analysis uploaded successfully"}`)
	}))
}

func scores() huescore.Scores {
	return huescore.Analyze([]huescore.Pixel{{R: 255, G: 0, B: 0}}, huescore.DefaultOptions())
}

func TestUpload(t *testing.T) {
	srv := collector(t, "secret")
	defer srv.Close()

	ctx := context.Background()
	c, err := upload.NewClient(ctx, srv.URL+"/", "secret", 5*time.Second)
	require.NoError(t, err)

	resp, err := c.Upload(ctx, upload.Payload{ImageID: "abc", ImageURL: "https://example.com/abc", Colors: scores()})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, "abc", resp.ImageID)
	assert.Equal(t, "Color analysis uploaded successfully", resp.Message)
}

func TestUploadExplicitNotOK(t *testing.T) {
	srv := collector(t, "secret")
	defer srv.Close()

	ctx := context.Background()
	c, err := upload.NewClient(ctx, srv.URL, "secret", 5*time.Second)
	require.NoError(t, err)

	resp, err := c.Upload(ctx, upload.Payload{ImageID: "broken", Colors: scores()})
	require.ErrorIs(t, err, upload.ErrRejected)
	assert.Contains(t, err.Error(), "database unavailable")
	assert.False(t, resp.OK)
}

func TestUploadWithoutOKField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"image_id":"abc"}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	c, err := upload.NewClient(ctx, srv.URL, "secret", 5*time.Second)
	require.NoError(t, err)

	resp, err := c.Upload(ctx, upload.Payload{ImageID: "abc", Colors: scores()})
	require.NoError(t, err)
	assert.True(t, resp.OK)
}

func TestUploadUnauthorized(t *testing.T) {
	srv := collector(t, "secret")
	defer srv.Close()

	ctx := context.Background()
	c, err := upload.NewClient(ctx, srv.URL, "wrong", 5*time.Second)
	require.NoError(t, err)

	_, err = c.Upload(ctx, upload.Payload{ImageID: "abc", Colors: scores()})
	require.ErrorIs(t, err, upload.ErrRejected)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestUploadValidation(t *testing.T) {
	ctx := context.Background()
	_, err := upload.NewClient(ctx, "http://localhost", "", time.Second)
	assert.ErrorIs(t, err, upload.ErrNoToken)

	_, err = upload.NewClient(ctx, "", "token", time.Second)
	assert.Error(t, err)

	c, err := upload.NewClient(ctx, "http://127.0.0.1:1", "token", time.Second)
	require.NoError(t, err)
	_, err = c.Upload(ctx, upload.Payload{ImageID: "abc"})
	assert.ErrorIs(t, err, upload.ErrRejected)
}

func TestPayloadJSON(t *testing.T) {
	data, err := json.Marshal(upload.Payload{ImageID: "id", ImageURL: "u", Colors: huescore.Scores{"Red": 1}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"image_id":"id","image_url":"u","colors":{"Red":1}}`, string(data))
}
