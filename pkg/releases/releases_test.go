package releases

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("invoke-ai", "InvokeAI", 5*time.Second)
	client.BaseURL = server.URL
	return client
}

func TestLatest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/invoke-ai/InvokeAI/releases/latest", r.URL.Path)
		fmt.Fprint(w, `{"tag_name": "v5.1.0"}`)
	})

	latest, err := client.Latest()
	require.NoError(t, err)
	assert.Equal(t, "5.1.0", latest)
}

func TestLatestEmptyTag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := client.Latest()
	require.Error(t, err)
}

func TestLatestHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	})

	_, err := client.Latest()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestListSortsNewestFirstAndDropsDrafts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"tag_name": "v5.0.0"},
			{"tag_name": "v5.2.0-rc1", "prerelease": true},
			{"tag_name": "v5.1.0"},
			{"tag_name": "v9.9.9", "draft": true}
		]`)
	})

	list, err := client.List(30)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "5.2.0-rc1", list[0].Version())
	assert.Equal(t, "5.1.0", list[1].Version())
	assert.Equal(t, "5.0.0", list[2].Version())
	assert.True(t, list[0].Prerelease)
}

func TestListUnparseableTagsSortLast(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"tag_name": "not-a-version"},
			{"tag_name": "v5.1.0"}
		]`)
	})

	list, err := client.List(30)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "5.1.0", list[0].Version())
	assert.Equal(t, "not-a-version", list[1].Version())
}

func TestPrevious(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"tag_name": "v5.2.0-rc1", "prerelease": true},
			{"tag_name": "v5.1.0"},
			{"tag_name": "v5.0.2"},
			{"tag_name": "v5.0.1"}
		]`)
	})

	previous, err := client.Previous()
	require.NoError(t, err)
	assert.Equal(t, "5.0.2", previous)
}

func TestPreviousSingleStableRelease(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"tag_name": "v5.1.0"}]`)
	})

	previous, err := client.Previous()
	require.NoError(t, err)
	assert.Empty(t, previous)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "5.1.0", Normalize("v5.1.0"))
	assert.Equal(t, "5.1.0", Normalize(" 5.1.0 "))
	assert.Equal(t, "", Normalize(""))
}
