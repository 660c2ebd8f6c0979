package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RehanAli357/baby-food/controllers"
	"github.com/RehanAli357/baby-food/models"
	"github.com/RehanAli357/baby-food/routes"
	"github.com/RehanAli357/baby-food/services"
	"github.com/RehanAli357/baby-food/views"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func setup(t *testing.T) (*gin.Engine, *services.RealtimeHub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := services.NewCatalog([]models.FoodRecord{
		{ID: 1, FoodName: "Rice Cereal", AgeGroup: "4-6 months",
			Nutrients: models.Nutrients{{Key: "calories_kcal", Amount: 60}, {Key: "iron_mg", Amount: 1.8}}, Quality: 30},
		{ID: 2, FoodName: "Mashed Banana", AgeGroup: "4-6 months",
			Nutrients: models.Nutrients{{Key: "fiber_g", Amount: 2.6}}},
		{ID: 3, FoodName: "Avocado", AgeGroup: "6-8 months",
			Nutrients: models.Nutrients{{Key: "fats_g", Amount: 15}}, Notes: strPtr("Serve ripe")},
	})
	require.NoError(t, err)

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	hub := services.NewRealtimeHub()
	r := routes.SetupRouter(routes.Deps{
		Catalog:  catalog,
		Hub:      hub,
		Renderer: renderer,
		Log:      zap.NewNop(),
	})
	return r, hub
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHomePage(t *testing.T) {
	r, _ := setup(t)

	w := do(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, views.PageTitle)
	assert.Contains(t, body, `<option value="All" selected>All</option>`)
	assert.Equal(t, 3, strings.Count(body, `<article class="food"`))
	assert.Contains(t, body, "Serve ripe")
}

func TestListFoods(t *testing.T) {
	r, _ := setup(t)

	w := do(r, http.MethodGet, "/api/foods", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int                 `json:"count"`
		Foods []models.FoodRecord `json:"foods"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.Foods, 3)
	assert.Equal(t, []string{"calories_kcal", "iron_mg"}, resp.Foods[0].Nutrients.Keys())
	assert.Equal(t, "Serve ripe", resp.Foods[2].NoteText())
}

func TestAgeGroups(t *testing.T) {
	r, _ := setup(t)

	w := do(r, http.MethodGet, "/api/age-groups", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"options": ["All", "4-6 months", "6-8 months"]}`, w.Body.String())
}

func TestFilterFoods(t *testing.T) {
	r, _ := setup(t)

	type filterResp struct {
		State services.ViewState  `json:"state"`
		Count int                 `json:"count"`
		Empty bool                `json:"empty"`
		Foods []models.FoodRecord `json:"foods"`
	}

	tests := []struct {
		name      string
		body      string
		wantIDs   []int
		wantState services.ViewState
	}{
		{
			name:      "Omitted age group means all",
			body:      `{"search": "IRON"}`,
			wantIDs:   []int{1},
			wantState: services.ViewState{SelectedAgeGroup: "All", SearchText: "IRON"},
		},
		{
			name:      "Age group only",
			body:      `{"age_group": "4-6 months"}`,
			wantIDs:   []int{1, 2},
			wantState: services.ViewState{SelectedAgeGroup: "4-6 months"},
		},
		{
			name:      "Both filters",
			body:      `{"age_group": "6-8 months", "search": "fats"}`,
			wantIDs:   []int{3},
			wantState: services.ViewState{SelectedAgeGroup: "6-8 months", SearchText: "fats"},
		},
		{
			name:      "Nothing matches",
			body:      `{"age_group": "6-8 months", "search": "banana"}`,
			wantIDs:   []int{},
			wantState: services.ViewState{SelectedAgeGroup: "6-8 months", SearchText: "banana"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/foods/filter", tt.body)
			require.Equal(t, http.StatusOK, w.Code)

			var resp filterResp
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantState, resp.State)
			assert.Equal(t, len(tt.wantIDs), resp.Count)
			assert.Equal(t, len(tt.wantIDs) == 0, resp.Empty)

			got := []int{}
			for _, f := range resp.Foods {
				got = append(got, f.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}

	t.Run("Bad body", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/foods/filter", `{"search": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"error"`)
	})
}

func TestHealth(t *testing.T) {
	r, _ := setup(t)

	w := do(r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok", "records": 3, "viewers": 0}`, w.Body.String())
}

func TestViewSocket(t *testing.T) {
	r, hub := setup(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/view"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() controllers.ViewUpdate {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var u controllers.ViewUpdate
		require.NoError(t, conn.ReadJSON(&u))
		return u
	}
	send := func(v any) {
		t.Helper()
		require.NoError(t, conn.WriteJSON(v))
	}

	initial := read()
	assert.NotEmpty(t, initial.Session)
	assert.Equal(t, services.InitialViewState(), initial.State)
	assert.Equal(t, 3, initial.Count)
	assert.Equal(t, 3, strings.Count(initial.HTML, `<article class="food"`))
	assert.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	send(services.ViewEvent{Type: services.EventSelectAgeGroup, Value: "4-6 months"})
	u := read()
	assert.Equal(t, "4-6 months", u.State.SelectedAgeGroup)
	assert.Equal(t, 2, u.Count)
	assert.Contains(t, u.HTML, "Mashed Banana")
	assert.NotContains(t, u.HTML, "Avocado")

	send(services.ViewEvent{Type: services.EventSetSearch, Value: "avocado"})
	u = read()
	assert.True(t, u.Empty)
	assert.Contains(t, u.HTML, views.NoResults)

	var e struct {
		Error string `json:"error"`
	}

	// an unknown event is reported and the session stays usable
	send(services.ViewEvent{Type: "reset"})
	require.NoError(t, conn.ReadJSON(&e))
	assert.Contains(t, e.Error, "reset")

	send(services.ViewEvent{Type: services.EventSelectAgeGroup, Value: services.AllAgeGroups})
	u = read()
	assert.Equal(t, services.ViewState{SelectedAgeGroup: "All", SearchText: "avocado"}, u.State)
	assert.Equal(t, 1, u.Count)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.ReadJSON(&e))
	assert.Contains(t, e.Error, "invalid event")

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestViewSocketReplaysControlsOnOpen(t *testing.T) {
	r, _ := setup(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/view", nil)
	require.NoError(t, err)
	defer conn.Close()

	// the page sends the current control values as soon as it connects, so
	// they may arrive before the initial update has been read
	require.NoError(t, conn.WriteJSON(services.ViewEvent{Type: services.EventSelectAgeGroup, Value: "4-6 months"}))
	require.NoError(t, conn.WriteJSON(services.ViewEvent{Type: services.EventSetSearch, Value: "banana"}))

	var last controllers.ViewUpdate
	for i := 0; i < 3; i++ {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		require.NoError(t, conn.ReadJSON(&last))
	}
	assert.Equal(t, services.ViewState{SelectedAgeGroup: "4-6 months", SearchText: "banana"}, last.State)
	assert.Equal(t, 1, last.Count)
	assert.Contains(t, last.HTML, "Mashed Banana")
}
