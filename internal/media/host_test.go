package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

func TestHost_Upload(t *testing.T) {
	t.Run("posts multipart form and returns the public url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/upload", r.URL.Path)
			require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			file, header, err := r.FormFile("image")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "fone.jpg", header.Filename)

			payload, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, []byte("jpegbytes"), payload)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"url":"https://img.example.com/fone.jpg"}`))
		}))
		defer srv.Close()

		host := NewHost(srv.URL, "test-key", time.Second)
		url, err := host.Upload(context.Background(), "fone.jpg", []byte("jpegbytes"))
		require.NoError(t, err)
		assert.Equal(t, "https://img.example.com/fone.jpg", url)
	})

	t.Run("non-2xx status is a plain error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "quota exceeded", http.StatusForbidden)
		}))
		defer srv.Close()

		host := NewHost(srv.URL, "", time.Second)
		_, err := host.Upload(context.Background(), "a.jpg", []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
		assert.Contains(t, err.Error(), "quota exceeded")

		// The client reports transport failures without claiming a domain
		// error type; StorageError belongs to the persistence layer.
		var storageErr *domain.StorageError
		assert.False(t, errors.As(err, &storageErr))
	})

	t.Run("empty url in response is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		host := NewHost(srv.URL, "", time.Second)
		_, err := host.Upload(context.Background(), "a.jpg", []byte("x"))
		assert.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"url":"https://img.example.com/a.jpg"}`))
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		host := NewHost(srv.URL, "", time.Second)
		_, err := host.Upload(ctx, "a.jpg", []byte("x"))
		assert.Error(t, err)
	})
}

func TestHost_Delete(t *testing.T) {
	t.Run("issues delete for the image path", func(t *testing.T) {
		var gotFile string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			require.Equal(t, "/delete", r.URL.Path)
			gotFile = r.URL.Query().Get("file")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		host := NewHost(srv.URL, "", time.Second)
		err := host.Delete(context.Background(), "https://img.example.com/uploads/fone.jpg")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/fone.jpg", gotFile)
	})

	t.Run("missing file on the host is not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		host := NewHost(srv.URL, "", time.Second)
		assert.NoError(t, host.Delete(context.Background(), "https://img.example.com/gone.jpg"))
	})

	t.Run("server failure is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		host := NewHost(srv.URL, "", time.Second)
		err := host.Delete(context.Background(), "https://img.example.com/a.jpg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}
