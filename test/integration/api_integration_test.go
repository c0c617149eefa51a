package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fresh-kart/internal/auth"
	"fresh-kart/internal/config"
	"fresh-kart/internal/handler"
	"fresh-kart/internal/model"
	"fresh-kart/internal/repository"
	"fresh-kart/internal/router"
	"fresh-kart/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "integration-s3cret"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	authMgr := auth.NewManager(config.AdminConfig{
		Username:     testAdminUser,
		PasswordHash: string(hash),
		JWTSecret:    "integration-signing-secret",
		TokenTTL:     3600,
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	adminHandler := handler.NewAdminHandler(authMgr, logger)

	// Create router
	return router.New(productHandler, orderHandler, adminHandler, authMgr, logger)
}

// loginAdmin performs the login flow and returns the session cookie.
func loginAdmin(t *testing.T, server http.Handler) *http.Cookie {
	t.Helper()

	body := `{"username": "` + testAdminUser + `", "password": "` + testAdminPassword + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func submitOrder(t *testing.T, server http.Handler, orderReq *model.OrderRequest) *model.OrderResponse {
	t.Helper()

	body, err := json.Marshal(orderReq)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp model.OrderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return &resp
}

func validOrderRequest() *model.OrderRequest {
	return &model.OrderRequest{
		CustomerName:    "Ivan Petrov",
		WhatsappNumber:  "+79991234567",
		DeliveryAddress: "Main St 1, apt 4",
		TotalAmount:     decimal.NewFromInt(210),
		Items: []model.OrderItemRequest{
			{ProductID: "P001", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(45)},
			{ProductID: "P002", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(120)},
		},
	}
}

func TestProductAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /api/products returns all products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var products []model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		assert.Len(t, products, 5)
	})

	t.Run("GET /api/products with pagination", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products?limit=2&offset=0", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var products []model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
		assert.Len(t, products, 2)
	})

	t.Run("GET /api/products/{id} returns specific product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products/P001", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var product model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
		assert.Equal(t, "P001", product.ID)
		assert.Equal(t, "Potatoes", product.Name)
		assert.True(t, product.MinQuantity.Equal(decimal.NewFromFloat(0.5)))
	})

	t.Run("GET /api/products/{id} returns 404 for non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/api/products/P999", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("POST /api/products without session returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/products",
			bytes.NewBufferString(`{"name": "Carrots", "price": 35}`))
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Admin can create, update and delete a product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		cookie := loginAdmin(t, server)

		// Create
		req := httptest.NewRequest(http.MethodPost, "/api/products",
			bytes.NewBufferString(`{"name": "Carrots", "price": 35, "category": "vegetables"}`))
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var created model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.InStock)
		assert.True(t, created.MinQuantity.Equal(decimal.NewFromFloat(0.5)))

		// Update
		req = httptest.NewRequest(http.MethodPut, "/api/products/"+created.ID,
			bytes.NewBufferString(`{"price": 42, "inStock": false}`))
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var updated model.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.True(t, updated.Price.Equal(decimal.NewFromInt(42)))
		assert.False(t, updated.InStock)
		assert.Equal(t, "Carrots", updated.Name)

		// Delete
		req = httptest.NewRequest(http.MethodDelete, "/api/products/"+created.ID, nil)
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		// Gone
		req = httptest.NewRequest(http.MethodGet, "/api/products/"+created.ID, nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /health returns 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOrderAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("POST /api/orders creates order successfully", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		resp := submitOrder(t, server, validOrderRequest())

		assert.NotEqual(t, "", resp.ID.String())
		assert.Equal(t, model.StatusPending, resp.Status)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(210)))
		assert.Len(t, resp.Items, 2)
		assert.Len(t, resp.Products, 2)
	})

	t.Run("POST /api/orders recomputes a tampered total", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		orderReq := validOrderRequest()
		orderReq.TotalAmount = decimal.NewFromInt(1)

		resp := submitOrder(t, server, orderReq)

		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(210)),
			"expected server-computed total, got %s", resp.TotalAmount)
	})

	t.Run("POST /api/orders fails with non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		orderReq := validOrderRequest()
		orderReq.Items[0].ProductID = "P999"

		body, err := json.Marshal(orderReq)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("POST /api/orders fails with invalid quantity", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		orderReq := validOrderRequest()
		orderReq.Items[0].Quantity = decimal.NewFromInt(-1)

		body, err := json.Marshal(orderReq)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /api/orders/{id} returns order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		created := submitOrder(t, server, validOrderRequest())

		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+created.ID.String(), nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var getResp model.OrderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&getResp))
		assert.Equal(t, created.ID, getResp.ID)
		assert.Equal(t, "Ivan Petrov", getResp.CustomerName)
	})

	t.Run("GET /api/orders without session returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Admin lists orders newest-first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)
		cookie := loginAdmin(t, server)

		first := submitOrder(t, server, validOrderRequest())
		second := submitOrder(t, server, validOrderRequest())

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var orders []model.OrderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&orders))
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Equal(t, first.ID, orders[1].ID)
		assert.Len(t, orders[0].Items, 2)
	})
}

func TestOrderLifecycle_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	updateStatus := func(t *testing.T, cookie *http.Cookie, id string, status model.Status) *httptest.ResponseRecorder {
		t.Helper()
		body := `{"status": "` + string(status) + `"}`
		req := httptest.NewRequest(http.MethodPut, "/api/orders/"+id, bytes.NewBufferString(body))
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		return w
	}

	t.Run("Order advances PENDING -> PROCESSING -> DELIVERED", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)
		cookie := loginAdmin(t, server)

		created := submitOrder(t, server, validOrderRequest())

		w := updateStatus(t, cookie, created.ID.String(), model.StatusProcessing)
		require.Equal(t, http.StatusOK, w.Code)

		w = updateStatus(t, cookie, created.ID.String(), model.StatusDelivered)
		require.Equal(t, http.StatusOK, w.Code)

		var resp model.OrderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, model.StatusDelivered, resp.Status)
	})

	t.Run("Cancelling a PROCESSING order is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)
		cookie := loginAdmin(t, server)

		created := submitOrder(t, server, validOrderRequest())

		w := updateStatus(t, cookie, created.ID.String(), model.StatusProcessing)
		require.Equal(t, http.StatusOK, w.Code)

		w = updateStatus(t, cookie, created.ID.String(), model.StatusCancelled)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Terminal order rejects further transitions", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)
		cookie := loginAdmin(t, server)

		created := submitOrder(t, server, validOrderRequest())

		w := updateStatus(t, cookie, created.ID.String(), model.StatusCancelled)
		require.Equal(t, http.StatusOK, w.Code)

		w = updateStatus(t, cookie, created.ID.String(), model.StatusProcessing)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("DELETE removes the order and its items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)
		cookie := loginAdmin(t, server)

		created := submitOrder(t, server, validOrderRequest())

		req := httptest.NewRequest(http.MethodDelete, "/api/orders/"+created.ID.String(), nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/orders/"+created.ID.String(), nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var count int
		err := testDB.Pool.QueryRow(t.Context(),
			"SELECT COUNT(*) FROM order_items WHERE order_id = $1", created.ID).Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Items survive product deletion", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)
		cookie := loginAdmin(t, server)

		created := submitOrder(t, server, validOrderRequest())

		req := httptest.NewRequest(http.MethodDelete, "/api/products/P001", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/orders/"+created.ID.String(), nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp model.OrderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Items, 2)
		for _, item := range resp.Items {
			if item.ProductID == "P001" {
				assert.True(t, item.Price.Equal(decimal.NewFromInt(45)))
			}
		}
	})
}

func TestCORS_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("OPTIONS request returns CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
	})
}
