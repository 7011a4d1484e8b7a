package handler

import (
	"testing"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_Lists(t *testing.T) {
	catalog := &fakeCatalogService{
		eventTypes: []model.EventType{{ID: 2, Name: "Birthday"}, {ID: 1, Name: "Wedding"}},
		packages: []model.PricePackage{{ID: 1, Name: "Basic", Price: 499, Features: []model.PricePackageFeature{
			{ID: 1, Name: "4 hours", PricePackageID: 1},
		}}},
	}
	app := fiber.New()
	NewCatalogHandler(CatalogDeps{Catalog: catalog}).Register(app)

	resp, data := doRequest(t, app, fiber.MethodGet, "/api/event-types", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":2,"name":"Birthday"},{"id":1,"name":"Wedding"}]`, string(data))

	resp, data = doRequest(t, app, fiber.MethodGet, "/api/packages", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"features":[{"id":1,"name":"4 hours"`)

	resp, data = doRequest(t, app, fiber.MethodGet, "/api/counters", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(data))
}

func TestCatalogHandler_AboutUnsetIsNull(t *testing.T) {
	app := fiber.New()
	NewCatalogHandler(CatalogDeps{Catalog: &fakeCatalogService{aboutErr: service.ErrAboutNotFound}}).Register(app)

	resp, data := doRequest(t, app, fiber.MethodGet, "/api/about", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", string(data))
}

func TestCatalogHandler_UpdateAbout(t *testing.T) {
	catalog := &fakeCatalogService{}
	app := fiber.New()
	NewCatalogHandler(CatalogDeps{Catalog: catalog}).Register(app)

	resp, data := doRequest(t, app, fiber.MethodPut, "/api/about", `{"id":1,"description":"We play weddings.","imageUrl":"/dj.jpg"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	require.NotNil(t, catalog.updated)
	assert.Equal(t, "We play weddings.", catalog.updated.Description)

	catalog.updateErr = service.ErrAboutNotFound
	resp, _ = doRequest(t, app, fiber.MethodPut, "/api/about", `{"id":9,"description":"x"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	staffOnly := fiber.New()
	NewCatalogHandler(CatalogDeps{Catalog: catalog, RequireStaff: denyAll}).Register(staffOnly)
	resp, _ = doRequest(t, staffOnly, fiber.MethodPut, "/api/about", `{"id":1,"description":"x"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
