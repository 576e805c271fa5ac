package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"https://shop.example.com/feed.yaml", true},
		{"http://127.0.0.1:8000/feed", true},
		{"s3://feeds/shop1.yaml", true},
		{"ftp://shop.example.com/feed.yaml", false},
		{"shop.example.com/feed.yaml", false},
		{"/local/file.yaml", false},
		{"https://", false},
		{"", false},
		{"not a url", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := ValidateURL(tt.raw)
			if tt.valid {
				require.NoError(t, err)
				assert.NotNil(t, u)
				return
			}
			assert.ErrorIs(t, err, shared.ErrInvalidURL)
		})
	}
}

func TestParse_ListLayout(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "shop1.yaml"))
	require.NoError(t, err)

	feed, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "Euroset", feed.Shop.Name)
	assert.Equal(t, "https://euroset.example.com/feed.yaml", feed.Shop.URL)
	require.Len(t, feed.Categories, 2)
	assert.Equal(t, int64(224), feed.Categories[0].ID)
	require.Len(t, feed.Goods, 2)

	phone := feed.Goods[0]
	assert.Equal(t, int64(4216292), phone.ID)
	assert.Equal(t, int64(224), phone.Category)
	assert.Equal(t, "110000", phone.Price.String())
	assert.Equal(t, 14, phone.Quantity)
	require.Len(t, phone.Parameters, 4)
	assert.Equal(t, "Screen size (inch)", phone.Parameters[0].Name)
	assert.Equal(t, "6.5", phone.Parameters[0].Value)
	assert.Equal(t, "Color", phone.Parameters[3].Name)

	assert.Equal(t, "12990.5", feed.Goods[1].Price.String())
	assert.Empty(t, feed.Goods[1].Parameters)
	assert.Equal(t, 4, feed.ParameterCount())
	require.NoError(t, feed.Validate())
}

func TestParse_MappingLayout(t *testing.T) {
	doc := `
shop: Svyaznoy
categories:
  - id: 1
    name: Phones
goods:
  - id: 10
    category: 1
    model: nokia/3310
    name: Nokia 3310
    price: 100
    price_rrc: 120
    quantity: 5
    parameters:
      Color: blue
`
	feed, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "Svyaznoy", feed.Shop.Name)
	assert.Empty(t, feed.Shop.URL)
	require.Len(t, feed.Goods, 1)
	assert.Equal(t, "blue", feed.Goods[0].Parameters[0].Value)
}

func TestParse_Malformed(t *testing.T) {
	docs := map[string]string{
		"syntax":           "goods: [",
		"empty":            "",
		"scalar root":      "just text",
		"bad price":        "goods:\n  - name: x\n    price: cheap\n",
		"nested parameter": "goods:\n  - name: x\n    parameters:\n      Color: [red]\n",
		"list parameters":  "goods:\n  - name: x\n    parameters: [a, b]\n",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	body := "shop: Test\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed.yaml":
			assert.Equal(t, "shopfeed-importer/1.0", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(body))
		case "/big.yaml":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		case "/slow.yaml":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(body))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	src := NewHTTPSource(100*time.Millisecond, 32)
	fetch := func(path string) ([]byte, error) {
		u, err := url.Parse(server.URL + path)
		require.NoError(t, err)
		return src.Fetch(context.Background(), u)
	}

	t.Run("ok", func(t *testing.T) {
		data, err := fetch("/feed.yaml")
		require.NoError(t, err)
		assert.Equal(t, body, string(data))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := fetch("/missing.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("too large", func(t *testing.T) {
		_, err := fetch("/big.yaml")
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("timeout", func(t *testing.T) {
		_, err := fetch("/slow.yaml")
		assert.Error(t, err)
	})
}

type stubSource struct {
	data []byte
	got  *url.URL
}

func (s *stubSource) Fetch(_ context.Context, u *url.URL) ([]byte, error) {
	s.got = u
	return s.data, nil
}

func TestSchemeSource(t *testing.T) {
	web := &stubSource{data: []byte("web")}
	sources := SchemeSource{"http": web, "https": web}

	u, _ := url.Parse("HTTPS://shop.example.com/feed")
	data, err := sources.Fetch(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "web", string(data))
	assert.Same(t, u, web.got)

	u, _ = url.Parse("s3://feeds/shop.yaml")
	_, err = sources.Fetch(context.Background(), u)
	assert.Error(t, err)
}

func TestObjectLocation(t *testing.T) {
	u, _ := url.Parse("s3://feeds/shops/euroset.yaml")
	bucket, key := objectLocation(u)
	assert.Equal(t, "feeds", bucket)
	assert.Equal(t, "shops/euroset.yaml", key)
}

func TestReadSeed(t *testing.T) {
	data, err := ReadSeed(filepath.Join("testdata", "shop1.yaml"), 0)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = ReadSeed(filepath.Join("testdata", "shop1.yaml"), 10)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = ReadSeed(filepath.Join("testdata", "missing.yaml"), 0)
	assert.Error(t, err)
}
