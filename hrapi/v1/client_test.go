package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ortm.io/hrportal/hrapi/v1/common"
)

const pointageJSON = `{
	"id_pointage": "PTG0001",
	"employe": "123456789012",
	"employe_nom": "Aina Rakoto",
	"date_pointage": "2024-03-01",
	"heure_entree": "08:00:00",
	"heure_sortie": "17:00:00",
	"remarque": "Sans remarque.",
	"created_by": 7
}`

func TestDecodeListShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Bare array", body: `[` + pointageJSON + `]`},
		{name: "Results wrapper", body: `{"results": [` + pointageJSON + `]}`},
		{name: "Data wrapper", body: `{"data": [` + pointageJSON + `]}`},
		{name: "Nested data results", body: `{"data": {"results": [` + pointageJSON + `]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := decodeList[common.PointageDTO]([]byte(tt.body))
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "PTG0001", list[0].ID)
			assert.Equal(t, "2024-03-01", list[0].Date.String())
			assert.Equal(t, "08:00:00", list[0].HeureEntree.String())
			require.NotNil(t, list[0].HeureSortie)
			assert.Equal(t, "17:00:00", list[0].HeureSortie.String())
		})
	}
}

func TestPointageList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/pointages/", r.URL.Path)
		w.Write([]byte(`[` + pointageJSON + `]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("tok"))
	list, err := client.Pointages.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "123456789012", list[0].Employe)
}

func TestPointageCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var dto common.PointageDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&dto))
		assert.Equal(t, "PTG0002", dto.ID)
		assert.Equal(t, "08:30:00", dto.HeureEntree.String())
		assert.Nil(t, dto.HeureSortie)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dto)
	}))
	defer server.Close()

	entree, err := common.ParseTimeOnly("08:30")
	require.NoError(t, err)

	client := NewClient(server.URL, StaticToken("tok"))
	created, err := client.Pointages.Create(context.Background(), &common.PointageDTO{
		ID:          "PTG0002",
		Employe:     "123456789012",
		HeureEntree: entree,
	})

	require.NoError(t, err)
	assert.Equal(t, "PTG0002", created.ID)
}

func TestPointageUpdateFallsBackToPut(t *testing.T) {
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(pointageJSON))
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("tok"))
	updated, err := client.Pointages.Update(context.Background(), "PTG0001", &common.PointageDTO{ID: "PTG0001"})

	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodPatch, http.MethodPut}, methods)
	assert.Equal(t, "PTG0001", updated.ID)
}

func TestPointageDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/pointages/PTG0001/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("tok"))
	assert.NoError(t, client.Pointages.Delete(context.Background(), "PTG0001"))
}

func TestAuthLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login must go out unauthenticated")

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "No active account found with the given credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(common.TokenPairDTO{Access: "acc", Refresh: "ref"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	pair, err := client.Auth.Login(context.Background(), "admin@ortm.io", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "acc", pair.Access)
	assert.Equal(t, "ref", pair.Refresh)

	_, err = client.Auth.Login(context.Background(), "admin@ortm.io", "wrong")
	assert.True(t, IsKind(err, KindAuthentication))
}

func TestUsersMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/", r.URL.Path)
		json.NewEncoder(w).Encode(common.UserDTO{ID: 7, Email: "admin@ortm.io", IsSuperuser: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("tok"))
	user, err := client.Users.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.True(t, user.IsSuperuser)
}

func TestMonthlyStatsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pointages/stats_mensuelles/", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("mois"))
		assert.Equal(t, "2024", r.URL.Query().Get("annee"))
		json.NewEncoder(w).Encode(common.MonthlyStatsDTO{Mois: 3, Annee: 2024, TotalPointages: 42})
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("tok"))
	stats, err := client.Pointages.MonthlyStats(context.Background(), 3, 2024)

	require.NoError(t, err)
	assert.Equal(t, 42, stats.TotalPointages)
}
