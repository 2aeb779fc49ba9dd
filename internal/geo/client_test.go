package geo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestClient_Search(t *testing.T) {
	client := NewClient("https://geo.test")

	t.Run("Best match taken", func(t *testing.T) {
		respBody := `[
			{"display_name": "Dolmen Mall, Clifton, Karachi", "lat": "24.8040", "lon": "67.0303"},
			{"display_name": "Somewhere else", "lat": "1", "lon": "2"}
		]`

		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "GET", req.Method)
			assert.Equal(t, "geo.test", req.URL.Host)
			assert.Equal(t, "dolmen mall", req.URL.Query().Get("q"))
			return jsonResponse(http.StatusOK, respBody)
		})

		res, err := client.Search(context.Background(), "dolmen mall")
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, "Dolmen Mall, Clifton, Karachi", res.Address)
		assert.InDelta(t, 24.8040, res.Lat, 1e-9)
		assert.InDelta(t, 67.0303, res.Lng, 1e-9)
	})

	t.Run("No result is nil not error", func(t *testing.T) {
		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `[]`)
		})

		res, err := client.Search(context.Background(), "zzzz")
		assert.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("Network failure surfaces error", func(t *testing.T) {
		client.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		res, err := client.Search(context.Background(), "anything")
		assert.Error(t, err)
		assert.Nil(t, res)
	})

	t.Run("Non-200 surfaces error", func(t *testing.T) {
		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusBadGateway, `upstream down`)
		})

		_, err := client.Search(context.Background(), "anything")
		assert.Error(t, err)
	})
}

func TestClient_Reverse(t *testing.T) {
	client := NewClient("https://geo.test")

	t.Run("Success", func(t *testing.T) {
		respBody := `{"display_name": "12 Hill Road, Karachi", "lat": "24.8607", "lon": "67.0011"}`

		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "24.8607", req.URL.Query().Get("lat"))
			assert.Equal(t, "67.0011", req.URL.Query().Get("lon"))
			return jsonResponse(http.StatusOK, respBody)
		})

		res, err := client.Reverse(context.Background(), 24.8607, 67.0011)
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, "12 Hill Road, Karachi", res.Address)
	})

	t.Run("Provider error field means no match", func(t *testing.T) {
		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{"error": "Unable to geocode"}`)
		})

		res, err := client.Reverse(context.Background(), 0, 0)
		assert.NoError(t, err)
		assert.Nil(t, res)
	})
}
