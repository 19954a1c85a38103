package sidra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecotrack/internal/config"
)

func testClient(baseURL string, maxAttempts int) *Client {
	return New(config.SidraConfig{
		BaseURL:     baseURL,
		Timeout:     config.Duration(5 * time.Second),
		MaxAttempts: maxAttempts,
		Backoff:     config.Duration(time.Millisecond),
	}, zap.NewNop())
}

const validPayload = `[
	{"V": "Valor", "D2N": "Mês", "D4N": "Atividade"},
	{"V": "10.5", "D2N": "janeiro 2022", "D4N": "4.1 Retail"},
	{"V": "-", "D2N": "fevereiro 2022", "D4N": "4.1 Retail"}
]`

func TestFetchSkipsHeaderRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validPayload))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 1)
	records, err := c.Fetch(context.Background(), Dataset{
		Sector: "commerce", Indicator: "volume",
		Table: "1403", Variable: "310", Period: "last 12",
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "commerce", records[0].Sector)
	assert.Equal(t, "volume", records[0].Indicator)
	assert.Equal(t, "4.1 Retail", records[0].Category)
	assert.Equal(t, "janeiro 2022", records[0].Period)
	assert.Equal(t, "10.5", records[0].Value)
	assert.Equal(t, "-", records[1].Value)
}

func TestFetchUsesClassificationColumn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"V": "Valor", "D2N": "Mês", "D5N": "Atividade"},
			{"V": "3", "D2N": "janeiro 2022", "D5N": "Lodging"}
		]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 1)
	records, err := c.Fetch(context.Background(), Dataset{
		Sector: "service", Indicator: "volume",
		Table: "8163", Variable: "7168", Period: "last 60",
		Classifications: map[string]string{"11046": "56726", "1274": "all"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Lodging", records[0].Category)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(validPayload))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 3)
	records, err := c.Fetch(context.Background(), Dataset{Table: "1403", Variable: "310", Period: "last 12"})
	require.NoError(t, err)
	assert.Equal(t, 3, requests)
	assert.Len(t, records, 2)
}

func TestFetchGivesUpAfterMaxAttempts(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 2)
	_, err := c.Fetch(context.Background(), Dataset{Table: "1403", Variable: "310", Period: "last 12"})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Equal(t, 2, requests)
}

func TestFetchClientErrorNotRetried(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 3)
	_, err := c.Fetch(context.Background(), Dataset{Table: "9999", Variable: "1", Period: "last 12"})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Equal(t, 1, requests)
}

func TestFetchRejectsUnexpectedShape(t *testing.T) {
	for name, payload := range map[string]string{
		"not json":        `<html>maintenance</html>`,
		"empty array":     `[]`,
		"missing column":  `[{"V": "Valor", "D2N": "Mês"}]`,
		"object not list": `{"V": "Valor"}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(payload))
			}))
			defer srv.Close()

			c := testClient(srv.URL, 1)
			_, err := c.Fetch(context.Background(), Dataset{Table: "1403", Variable: "310", Period: "last 12"})
			assert.ErrorIs(t, err, ErrSourceFormat)
		})
	}
}

func TestValuesURL(t *testing.T) {
	c := testClient("https://apisidra.ibge.gov.br", 1)

	got := c.valuesURL(Dataset{
		Table: "1403", Variable: "310", Period: "last 12",
		Classification: "11070/4765",
	})
	assert.Equal(t,
		"https://apisidra.ibge.gov.br/values/t/1403/n1/all/v/310/p/last%2012/c11070/4765",
		got)

	got = c.valuesURL(Dataset{
		Table: "8163", Variable: "7168", Period: "last 60",
		Classifications: map[string]string{"1274": "all", "11046": "56726"},
	})
	assert.Equal(t,
		"https://apisidra.ibge.gov.br/values/t/8163/n1/all/v/7168/p/last%2060/c11046/56726/c1274/all",
		got)
}

func TestDatasetCatalog(t *testing.T) {
	datasets := Datasets()
	require.Len(t, datasets, 7)

	seen := map[string]bool{}
	for _, ds := range datasets {
		key := ds.Sector + "_" + ds.Indicator
		assert.False(t, seen[key], "duplicate dataset %s", key)
		seen[key] = true
		assert.NotEmpty(t, ds.Table)
		assert.NotEmpty(t, ds.Variable)
		assert.NotEmpty(t, ds.Period)
	}

	for _, want := range []string{
		"commerce_volume", "commerce_revenue", "commerce_expense",
		"industry_production", "industry_revenue",
		"service_volume", "service_revenue",
	} {
		assert.True(t, seen[want], "missing dataset %s", want)
	}
}
