package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/orbislink/agrilink-api/internal/interfaces/http"
)

func localeApp() *fiber.App {
	handler := apphttp.NewLocaleHandler()
	app := fiber.New()
	app.Get("/locales/countries", handler.Countries)
	app.Get("/locales/:country/provinces", handler.Provinces)
	app.Get("/locales/:country/provinces/:province/municipalities", handler.Municipalities)
	return app
}

func TestLocales_Countries(t *testing.T) {
	app := localeApp()

	req := httptest.NewRequest(http.MethodGet, "/locales/countries", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var countries []map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&countries))
	require.NotEmpty(t, countries)

	codes := make([]string, 0, len(countries))
	for _, c := range countries {
		codes = append(codes, c["code"])
		assert.NotEmpty(t, c["name_pt"])
		assert.NotEmpty(t, c["name_en"])
		assert.NotEmpty(t, c["name_fr"])
	}
	assert.Contains(t, codes, "AO", "Angola é o país principal")
}

func TestLocales_ProvinciasDeAngola(t *testing.T) {
	app := localeApp()

	req := httptest.NewRequest(http.MethodGet, "/locales/AO/provinces", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var provinces []struct {
		Name           string   `json:"name"`
		Municipalities []string `json:"municipalities"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&provinces))
	assert.Len(t, provinces, 18, "Angola tem 18 províncias")

	names := make([]string, 0, len(provinces))
	for _, p := range provinces {
		names = append(names, p.Name)
		assert.NotEmpty(t, p.Municipalities, "cada província tem municípios: %s", p.Name)
	}
	assert.Contains(t, names, "Luanda")
	assert.Contains(t, names, "Huambo")
}

// O código do país é case-insensitive no path.
func TestLocales_CodigoMinusculo(t *testing.T) {
	app := localeApp()

	req := httptest.NewRequest(http.MethodGet, "/locales/ao/provinces", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLocales_PaisNaoSuportado(t *testing.T) {
	app := localeApp()

	req := httptest.NewRequest(http.MethodGet, "/locales/XX/provinces", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLocales_MunicipiosDeProvinciaComAcentos(t *testing.T) {
	app := localeApp()

	// "Bié" percent-encoded no path.
	req := httptest.NewRequest(http.MethodGet, "/locales/AO/provinces/Bi%C3%A9/municipalities", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var municipalities []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&municipalities))
	assert.Contains(t, municipalities, "Cuíto")
}

func TestLocales_ProvinciaInexistente(t *testing.T) {
	app := localeApp()

	req := httptest.NewRequest(http.MethodGet, "/locales/AO/provinces/Atlantida/municipalities", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
