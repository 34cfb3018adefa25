package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/petshop-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoryResponse struct {
	UUID  string `json:"uuid"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type productResponse struct {
	UUID         string            `json:"uuid"`
	CategoryUUID string            `json:"category_uuid"`
	Title        string            `json:"title"`
	Price        string            `json:"price"`
	Metadata     map[string]string `json:"metadata"`
	Category     *categoryResponse `json:"category"`
}

func TestCategoryHandler_CRUD(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)

	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/category/create"),
		map[string]string{"title": "Dog Food", "slug": "dog-food"}, token))
	created := testutil.AssertSuccess[categoryResponse](t, resp)
	require.NotEmpty(t, created.UUID)

	t.Run("duplicate slug", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/category/create"),
			map[string]string{"title": "Other", "slug": "dog-food"}, token))
		testutil.AssertValidationError(t, resp, "slug")
	})

	t.Run("public read", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/category/"+created.UUID), nil, ""))
		got := testutil.AssertSuccess[categoryResponse](t, resp)
		assert.Equal(t, "dog-food", got.Slug)

		resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/categories"), nil, ""))
		list := testutil.AssertSuccess[struct {
			Categories testutil.Page[categoryResponse] `json:"categories"`
		}](t, resp)
		assert.Equal(t, int64(1), list.Categories.Total)
	})

	t.Run("patch keeps missing fields", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPatch, ts.APIURL("/category/"+created.UUID),
			map[string]string{"title": "Kibble"}, token))
		got := testutil.AssertSuccess[categoryResponse](t, resp)
		assert.Equal(t, "Kibble", got.Title)
		assert.Equal(t, "dog-food", got.Slug)
	})

	t.Run("put requires every field", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/category/"+created.UUID),
			map[string]string{"title": "Kibble"}, token))
		testutil.AssertValidationError(t, resp, "slug")
	})

	t.Run("unknown category", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/category/"+uuid.NewString()), nil, ""))
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Category not found")
	})

	t.Run("delete", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/category/"+created.UUID), nil, token))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/category/"+created.UUID), nil, ""))
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestCategoryHandler_MutationsRequireAdmin(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, customerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	category := testutil.NewCategoryBuilder().Build(t, ts.DB.DB)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "create category", method: http.MethodPost, path: "/category/create"},
		{name: "update category", method: http.MethodPut, path: "/category/" + category.UUID},
		{name: "delete category", method: http.MethodDelete, path: "/category/" + category.UUID},
		{name: "create product", method: http.MethodPost, path: "/product/create"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := map[string]string{"title": "x", "slug": "x"}
			resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, tt.method, ts.APIURL(tt.path), body, customerToken))
			testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Unauthorized. Admins only.")
		})
	}
}

func TestCategoryHandler_DeleteInUse(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)
	category := testutil.NewCategoryBuilder().Build(t, ts.DB.DB)
	testutil.NewProductBuilder().WithCategory(category).Build(t, ts.DB.DB)

	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/category/"+category.UUID), nil, token))
	testutil.AssertValidationError(t, resp, "uuid")
}

func TestProductHandler_CRUD(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)
	category := testutil.NewCategoryBuilder().Build(t, ts.DB.DB)

	body := map[string]any{
		"category_uuid": category.UUID,
		"title":         "Squeaky Bone",
		"price":         12.5,
		"description":   "Loud",
		"metadata":      `{"brand":"acme","image":""}`,
	}

	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/product/create"), body, token))
	created := testutil.AssertSuccess[productResponse](t, resp)
	assert.Equal(t, "12.5", created.Price)
	assert.Equal(t, "acme", created.Metadata["brand"])

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name  string
			key   string
			value any
			field string
		}{
			{name: "zero price", key: "price", value: 0, field: "price"},
			{name: "price rounds to zero", key: "price", value: "0.004", field: "price"},
			{name: "bad category uuid", key: "category_uuid", value: "nope", field: "category_uuid"},
			{name: "unknown category", key: "category_uuid", value: uuid.NewString(), field: "category_uuid"},
			{name: "metadata not an object", key: "metadata", value: []int{1, 2}, field: "metadata"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				bad := map[string]any{}
				for k, v := range body {
					bad[k] = v
				}
				bad[tt.key] = tt.value

				resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/product/create"), bad, token))
				testutil.AssertValidationError(t, resp, tt.field)
			})
		}
	})

	t.Run("public read includes category", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/product/"+created.UUID), nil, ""))
		got := testutil.AssertSuccess[productResponse](t, resp)
		require.NotNil(t, got.Category)
		assert.Equal(t, category.Slug, got.Category.Slug)
	})

	t.Run("update", func(t *testing.T) {
		update := map[string]any{}
		for k, v := range body {
			update[k] = v
		}
		update["title"] = "Silent Bone"
		update["price"] = "7.99"

		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/product/"+created.UUID), update, token))
		got := testutil.AssertSuccess[productResponse](t, resp)
		assert.Equal(t, "Silent Bone", got.Title)
		assert.Equal(t, "7.99", got.Price)
	})

	t.Run("delete", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/product/"+created.UUID), nil, token))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/product/"+created.UUID), nil, ""))
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Product not found")
	})
}

func TestProductHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	category := testutil.NewCategoryBuilder().Build(t, ts.DB.DB)
	for _, price := range []string{"5.00", "15.00", "10.00"} {
		testutil.NewProductBuilder().WithCategory(category).WithPrice(price).Build(t, ts.DB.DB)
	}

	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/products?sort_by=price&desc=true&limit=2&page=1"), nil, ""))
	data := testutil.AssertSuccess[struct {
		Products testutil.Page[productResponse] `json:"products"`
	}](t, resp)

	assert.Equal(t, int64(3), data.Products.Total)
	assert.Equal(t, 2, data.Products.LastPage)
	require.Len(t, data.Products.Data, 2)
	assert.Equal(t, "15", data.Products.Data[0].Price)
	assert.Equal(t, "10", data.Products.Data[1].Price)
	assert.NotNil(t, data.Products.Data[0].Category)
}
