package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"

	"complaintfinder/internal/config"
	"complaintfinder/internal/store"
	"complaintfinder/views"
)

func newHomeApp(t *testing.T, gw store.Gateway) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		SiteTitle:   "민원 분야 찾기",
		SiteTagline: "키워드로 담당 분야를 찾아보세요",
		BaseURL:     "https://complaints.example.org/",
	}

	app := fiber.New(fiber.Config{
		Views:       views.NewEngine(),
		ViewsLayout: "layouts/main",
	})
	app.Get("/", NewHomeHandler(newTestResolver(t, gw), cfg).Index)
	return app
}

func TestHome_Index(t *testing.T) {
	gw := &fakeGateway{records: sampleRecords}
	app := newHomeApp(t, gw)

	resp, body := doRequest(t, app, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "민원 분야 찾기")
	assert.Contains(t, body, `data-keyword="주차"`)
	assert.Contains(t, body, `<link rel="canonical" href="https://complaints.example.org/">`)
	assert.Zero(t, gw.calls, "empty page must not query the store")
}

func TestHome_RendersResult(t *testing.T) {
	app := newHomeApp(t, &fakeGateway{records: sampleRecords})

	resp, body := doRequest(t, app, http.MethodGet, "/?keyword=%EC%A3%BC%EC%B0%A8")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<strong>교통</strong>")
	assert.Contains(t, body, "키워드 매핑")
}

func TestHome_NoResult(t *testing.T) {
	app := newHomeApp(t, &fakeGateway{records: sampleRecords})

	_, body := doRequest(t, app, http.MethodGet, "/?keyword=xyz123")
	assert.Contains(t, body, "검색 결과가 없습니다.")
}

func TestHome_Errors(t *testing.T) {
	t.Run("blank keyword", func(t *testing.T) {
		gw := &fakeGateway{records: sampleRecords}
		app := newHomeApp(t, gw)

		resp, body := doRequest(t, app, http.MethodGet, "/?keyword=+")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "키워드를 입력해주세요.")
		assert.Zero(t, gw.calls)
	})

	t.Run("store not configured", func(t *testing.T) {
		app := newHomeApp(t, store.Unconfigured{})

		resp, body := doRequest(t, app, http.MethodGet, "/?keyword=%EC%A3%BC%EC%B0%A8")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Contains(t, body, "데이터 저장소 설정이 누락되었습니다.")
	})
}
