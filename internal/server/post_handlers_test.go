package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	_, token := signupUser(t, s, "author")
	mentioned, _ := signupUser(t, s, "friend")

	t.Run("requires auth", func(t *testing.T) {
		resp := doRequest(t, app, fiber.MethodPost, "/api/v1/posts", "", fiber.Map{
			"title": "t", "content": "c",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("success resolves mentions", func(t *testing.T) {
		resp := doRequest(t, app, fiber.MethodPost, "/api/v1/posts", token, fiber.Map{
			"title":   "First post",
			"content": "shout out to @friend and @nobody",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		data := dataField(t, decodeEnvelope(t, resp))
		assert.Equal(t, "First post", data["title"])
		mentions := data["mentions"].([]any)
		require.Len(t, mentions, 1)
		assert.EqualValues(t, mentioned.ID, mentions[0])
		assert.Equal(t, "author", data["author"].(map[string]any)["username"])
	})

	t.Run("validation failure", func(t *testing.T) {
		resp := doRequest(t, app, fiber.MethodPost, "/api/v1/posts", token, fiber.Map{
			"title": "", "content": "",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Len(t, envelope["errors"].([]any), 2)
	})
}

func TestGetPost(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	_, token := signupUser(t, s, "author")

	created := dataField(t, decodeEnvelope(t, doRequest(t, app, fiber.MethodPost, "/api/v1/posts", token, fiber.Map{
		"title": "hello", "content": "world",
	})))
	postID := int(created["id"].(float64))

	t.Run("found", func(t *testing.T) {
		resp := doRequest(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/posts/%d", postID), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := dataField(t, decodeEnvelope(t, resp))
		assert.Equal(t, "hello", data["title"])
	})

	t.Run("missing", func(t *testing.T) {
		resp := doRequest(t, app, fiber.MethodGet, "/api/v1/posts/99999", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := doRequest(t, app, fiber.MethodGet, "/api/v1/posts/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListPosts_PaginationEnvelope(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	_, token := signupUser(t, s, "author")

	for i := 0; i < 5; i++ {
		resp := doRequest(t, app, fiber.MethodPost, "/api/v1/posts", token, fiber.Map{
			"title": fmt.Sprintf("post %d", i), "content": "c",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, app, fiber.MethodGet, "/api/v1/posts?page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Len(t, envelope["data"].([]any), 2)

	meta := envelope["pagination"].(map[string]any)
	assert.EqualValues(t, 2, meta["page"])
	assert.EqualValues(t, 2, meta["limit"])
	assert.EqualValues(t, 5, meta["total"])
	assert.EqualValues(t, 3, meta["totalPages"])
	assert.Equal(t, true, meta["hasNext"])
	assert.Equal(t, true, meta["hasPrev"])

	// A page past the end is empty with unchanged totals.
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/posts?page=9&limit=2", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	assert.Empty(t, envelope["data"])
	assert.EqualValues(t, 5, envelope["pagination"].(map[string]any)["total"])

	// A sort field that only exists on another entity falls back to
	// created_at rather than surfacing a database error.
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/posts?sortBy=username", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	assert.Len(t, envelope["data"].([]any), 5)

	// An explicit limit=0 clamps to the minimum window of one item.
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/posts?limit=0", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	assert.Len(t, envelope["data"].([]any), 1)
	assert.EqualValues(t, 1, envelope["pagination"].(map[string]any)["limit"])
	assert.EqualValues(t, 5, envelope["pagination"].(map[string]any)["total"])
}

func TestUpdatePost_AuthorOnly(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	_, authorToken := signupUser(t, s, "author")
	_, otherToken := signupUser(t, s, "other")

	created := dataField(t, decodeEnvelope(t, doRequest(t, app, fiber.MethodPost, "/api/v1/posts", authorToken, fiber.Map{
		"title": "orig", "content": "orig",
	})))
	path := fmt.Sprintf("/api/v1/posts/%d", int(created["id"].(float64)))

	resp := doRequest(t, app, fiber.MethodPut, path, otherToken, fiber.Map{
		"title": "hijack", "content": "hijack",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodPut, path, authorToken, fiber.Map{
		"title": "edited", "content": "edited",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := dataField(t, decodeEnvelope(t, resp))
	assert.Equal(t, "edited", data["title"])
}

func TestDeletePost(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	_, authorToken := signupUser(t, s, "author")
	_, otherToken := signupUser(t, s, "other")

	created := dataField(t, decodeEnvelope(t, doRequest(t, app, fiber.MethodPost, "/api/v1/posts", authorToken, fiber.Map{
		"title": "t", "content": "c",
	})))
	path := fmt.Sprintf("/api/v1/posts/%d", int(created["id"].(float64)))

	resp := doRequest(t, app, fiber.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodDelete, path, authorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLikePost_Toggle(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	_, authorToken := signupUser(t, s, "author")
	fan, fanToken := signupUser(t, s, "fan")

	created := dataField(t, decodeEnvelope(t, doRequest(t, app, fiber.MethodPost, "/api/v1/posts", authorToken, fiber.Map{
		"title": "t", "content": "c",
	})))
	path := fmt.Sprintf("/api/v1/posts/%d/like", int(created["id"].(float64)))

	resp := doRequest(t, app, fiber.MethodPost, path, fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	likes := dataField(t, decodeEnvelope(t, resp))["likes"].([]any)
	require.Len(t, likes, 1)
	assert.EqualValues(t, fan.ID, likes[0])

	// Second toggle unlikes.
	resp = doRequest(t, app, fiber.MethodPost, path, fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, dataField(t, decodeEnvelope(t, resp))["likes"])
}

func TestRePost(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	_, authorToken := signupUser(t, s, "author")
	reposter, reposterToken := signupUser(t, s, "reposter")

	created := dataField(t, decodeEnvelope(t, doRequest(t, app, fiber.MethodPost, "/api/v1/posts", authorToken, fiber.Map{
		"title": "Original", "content": "body",
	})))
	originalID := int(created["id"].(float64))

	resp := doRequest(t, app, fiber.MethodPost, fmt.Sprintf("/api/v1/posts/%d/repost", originalID), reposterToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := dataField(t, decodeEnvelope(t, resp))
	assert.Equal(t, "Re-post: Original", data["title"])
	assert.Equal(t, "body", data["content"])
	assert.EqualValues(t, originalID, data["original_post_id"])

	// The original's re-poster set is derived on read.
	resp = doRequest(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/posts/%d", originalID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rePosts := dataField(t, decodeEnvelope(t, resp))["re_posts"].([]any)
	require.Len(t, rePosts, 1)
	assert.EqualValues(t, reposter.ID, rePosts[0])

	t.Run("missing original", func(t *testing.T) {
		resp := doRequest(t, app, fiber.MethodPost, "/api/v1/posts/99999/repost", reposterToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetPostsByMention(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	_, token := signupUser(t, s, "author")
	signupUser(t, s, "alice")

	for _, content := range []string{"hi @alice", "hi @Alice again", "no mention"} {
		resp := doRequest(t, app, fiber.MethodPost, "/api/v1/posts", token, fiber.Map{
			"title": "t", "content": content,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, app, fiber.MethodGet, "/api/v1/posts/mention/alice", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Len(t, envelope["data"].([]any), 2)
	assert.EqualValues(t, 2, envelope["pagination"].(map[string]any)["total"])
}
