package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gamehub/internal/model"
)

func TestGameListPassesFilter(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("List", mock.Anything, "ttt").
		Return([]*model.Game{{ID: 1, Code: "ttt", Name: "Tic Tac Toe"}})
	h := NewGameHandler(catalog)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/v1/games?gameId=ttt", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	games, ok := body["games"].([]interface{})
	require.True(t, ok)
	require.Len(t, games, 1)
	assert.Equal(t, "Tic Tac Toe", games[0].(map[string]interface{})["name"])
	catalog.AssertExpectations(t)
}

func TestGameListWithoutFilter(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("List", mock.Anything, "").Return([]*model.Game{})
	h := NewGameHandler(catalog)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/v1/games", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	catalog.AssertExpectations(t)
}
