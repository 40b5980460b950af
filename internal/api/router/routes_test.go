package router

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
)

// noopCRUDHandler satisfies CRUDHandler for route-table tests.
type noopCRUDHandler struct{}

func (noopCRUDHandler) InsertOne(c fiber.Ctx) error          { return nil }
func (noopCRUDHandler) InsertMany(c fiber.Ctx) error         { return nil }
func (noopCRUDHandler) Find(c fiber.Ctx) error               { return nil }
func (noopCRUDHandler) FindOne(c fiber.Ctx) error            { return nil }
func (noopCRUDHandler) FindOneById(c fiber.Ctx) error        { return nil }
func (noopCRUDHandler) FindManyByIds(c fiber.Ctx) error      { return nil }
func (noopCRUDHandler) FindWithPagination(c fiber.Ctx) error { return nil }
func (noopCRUDHandler) UpdateOne(c fiber.Ctx) error          { return nil }
func (noopCRUDHandler) UpdateMany(c fiber.Ctx) error         { return nil }
func (noopCRUDHandler) UpdateById(c fiber.Ctx) error         { return nil }
func (noopCRUDHandler) FindOneAndUpdate(c fiber.Ctx) error   { return nil }
func (noopCRUDHandler) DeleteOne(c fiber.Ctx) error          { return nil }
func (noopCRUDHandler) DeleteMany(c fiber.Ctx) error         { return nil }
func (noopCRUDHandler) DeleteById(c fiber.Ctx) error         { return nil }
func (noopCRUDHandler) FindOneAndDelete(c fiber.Ctx) error   { return nil }
func (noopCRUDHandler) CountDocuments(c fiber.Ctx) error     { return nil }
func (noopCRUDHandler) Distinct(c fiber.Ctx) error           { return nil }
func (noopCRUDHandler) Upsert(c fiber.Ctx) error             { return nil }
func (noopCRUDHandler) UpsertMany(c fiber.Ctx) error         { return nil }
func (noopCRUDHandler) DocumentExists(c fiber.Ctx) error     { return nil }

// registeredPaths collects "METHOD /path" keys for every explicitly
// registered route, with trailing slashes trimmed.
func registeredPaths(app *fiber.App) map[string]bool {
	paths := make(map[string]bool)
	for _, route := range app.GetRoutes(true) {
		paths[route.Method+" "+strings.TrimSuffix(route.Path, "/")] = true
	}
	return paths
}

func TestRegisterCRUDRoutesDistinctBindsFieldParam(t *testing.T) {
	app := fiber.New()
	r := NewRouter(app)
	r.RegisterCRUDRoutes(app, "/things", noopCRUDHandler{}, ReadWriteConfig, nil, nil)

	paths := registeredPaths(app)
	if !paths["GET /things/distinct/:field"] {
		t.Fatalf("distinct route missing :field parameter, registered paths: %v", paths)
	}
	if paths["GET /things/distinct"] {
		t.Error("distinct must not also be registered without the field segment")
	}
}

func TestRegisterCRUDRoutesByIdRoutesCarryParam(t *testing.T) {
	app := fiber.New()
	r := NewRouter(app)
	r.RegisterCRUDRoutes(app, "/things", noopCRUDHandler{}, ReadWriteConfig, nil, nil)

	paths := registeredPaths(app)
	for _, want := range []string{
		"GET /things/find-by-id/:id",
		"PUT /things/update-by-id/:id",
		"DELETE /things/delete-by-id/:id",
	} {
		if !paths[want] {
			t.Errorf("missing route %q", want)
		}
	}
}

func TestRegisterCRUDRoutesArchiveConfigOmitsWrites(t *testing.T) {
	app := fiber.New()
	r := NewRouter(app)
	r.RegisterCRUDRoutes(app, "/users", noopCRUDHandler{}, ArchiveConfig, nil, nil)

	paths := registeredPaths(app)
	for _, forbidden := range []string{
		"POST /users/insert-one",
		"POST /users/insert-many",
		"POST /users/upsert-one",
		"POST /users/upsert-many",
		"DELETE /users/delete-one",
		"DELETE /users/delete-many",
		"DELETE /users/delete-by-id/:id",
	} {
		if paths[forbidden] {
			t.Errorf("archive config must not register %q", forbidden)
		}
	}
	for _, want := range []string{
		"GET /users/find",
		"PUT /users/update-by-id/:id",
		"GET /users/distinct/:field",
	} {
		if !paths[want] {
			t.Errorf("archive config missing route %q", want)
		}
	}
}

func TestDistinctRouteReceivesFieldParam(t *testing.T) {
	app := fiber.New(fiber.Config{UnescapePath: true})
	RegisterRouteWithMiddleware(app, "/things/distinct", "GET", "/:field", nil, func(c fiber.Ctx) error {
		return c.SendString(c.Params("field"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/things/distinct/%E5%B7%A5%E5%A0%B4", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if got := string(body); got != "工場" {
		t.Errorf("field param = %q, want %q", got, "工場")
	}
}
