package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-admin-dashboard/internal/domain"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestLoginSuccess(t *testing.T) {
	var gotBody map[string]string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(LoginResult{
			Token: "tok-123",
			User:  domain.User{ID: 1, Name: "Root", Email: "root@x.io", Role: domain.RoleAdmin},
		})
	})

	res, err := c.Login(context.Background(), "root@x.io", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok-123", res.Token)
	require.Equal(t, "Root", res.User.Name)
	require.Equal(t, "root@x.io", gotBody["email"])
	require.Equal(t, "secret", gotBody["password"])
}

func TestLoginFailure(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})

	_, err := c.Login(context.Background(), "root@x.io", "wrong")
	require.Error(t, err)
	require.True(t, IsUnauthorized(err))
	require.False(t, IsForbidden(err))
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.Product{})
	})

	_, err := c.ListProducts(context.Background(), "tok-abc")
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(domain.User{ID: 2})
	})

	_, err := c.Register(context.Background(), "", RegisterInput{Name: "n", Email: "e", Password: "p", Role: domain.RoleEditor})
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestCreateProductMultipartWithoutImage(t *testing.T) {
	var calls int
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/products", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Pen", r.FormValue("name"))
		require.Equal(t, "1.5", r.FormValue("price"))
		require.Equal(t, "100", r.FormValue("stock"))
		require.Empty(t, r.MultipartForm.File, "no image part expected")
		_ = json.NewEncoder(w).Encode(domain.Product{ID: 9, Name: "Pen"})
	})

	p, err := c.CreateProduct(context.Background(), "tok", CreateProductInput{Name: "Pen", Price: "1.5", Stock: "100"})
	require.NoError(t, err)
	require.Equal(t, int64(9), p.ID)
	require.Equal(t, 1, calls)
}

func TestCreateProductMultipartWithImage(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["image"]
		require.Len(t, files, 1)
		require.Equal(t, "pen.png", files[0].Filename)
		require.Equal(t, "image/png", files[0].Header.Get("Content-Type"))
		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		var buf bytes.Buffer
		_, err = buf.ReadFrom(f)
		require.NoError(t, err)
		require.Equal(t, payload, buf.Bytes())
		_ = json.NewEncoder(w).Encode(domain.Product{ID: 10})
	})

	_, err := c.CreateProduct(context.Background(), "tok", CreateProductInput{
		Name: "Pen", Price: "1.5", Stock: "100",
		Image: &ImageUpload{Filename: "pen.png", ContentType: "image/png", Reader: bytes.NewReader(payload)},
	})
	require.NoError(t, err)
}

func TestCreateProductForbidden(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "admins only", http.StatusForbidden)
	})

	_, err := c.CreateProduct(context.Background(), "tok", CreateProductInput{Name: "Pen"})
	require.Error(t, err)
	require.True(t, IsForbidden(err))
}

func TestDeleteProduct(t *testing.T) {
	var gotMethod, gotPath string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteProduct(context.Background(), "tok", 42))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/products/42", gotPath)
}

func TestStatsDecoding(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stats", r.URL.Path)
		_ = json.NewEncoder(w).Encode(domain.DashboardStats{TotalUsers: 4, TotalProducts: 7, TotalValue: 199.5})
	})

	s, err := c.Stats(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, int64(4), s.TotalUsers)
	require.Equal(t, int64(7), s.TotalProducts)
	require.Equal(t, "199.50", s.DisplayTotalValue())
}

func TestContextCancellation(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListUsers(ctx, "tok")
	require.Error(t, err)
}
