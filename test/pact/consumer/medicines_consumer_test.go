//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Sanjaykumaar123/pharmatrack-lite/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type medicinePayload struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	StockStatus   string  `json:"stockStatus"`
	ListingStatus string  `json:"listingStatus"`
}

type orderPayload struct {
	ID       string  `json:"id"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	Status   string  `json:"status"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func TestPharmacyPortalContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	example := pacttest.ExampleMedicine()
	medicineMatcher := matchers.Map{
		"id":            matchers.Like(example["id"]),
		"name":          matchers.Like(example["name"]),
		"manufacturer":  matchers.Like(example["manufacturer"]),
		"batchNo":       matchers.Like(example["batchNo"]),
		"mfgDate":       matchers.Term(example["mfgDate"].(string), `\d{4}-\d{2}-\d{2}`),
		"expDate":       matchers.Term(example["expDate"].(string), `\d{4}-\d{2}-\d{2}`),
		"quantity":      matchers.Like(example["quantity"]),
		"price":         matchers.Like(example["price"]),
		"stockStatus":   matchers.Term(example["stockStatus"].(string), "In Stock|Low Stock|Out of Stock"),
		"listingStatus": matchers.Term(example["listingStatus"].(string), "Pending|Approved"),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateMedicineExists).
		UponReceiving("a request to fetch an approved medicine").
		WithRequest("GET", "/v1/medicines/"+pacttest.ExistingMedicineID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(medicineMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateMedicineAbsent).
		UponReceiving("a request for a missing medicine").
		WithRequest("GET", "/v1/medicines/"+pacttest.MissingMedicineID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateMedicineExists).
		UponReceiving("a guest order for the approved medicine").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderRequest())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":       matchers.Like("ord-0001"),
				"subtotal": matchers.Like(25.0),
				"tax":      matchers.Like(1.25),
				"total":    matchers.Like(26.25),
				"status":   matchers.S("Pending"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newPortalClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		medicine, err := client.GetMedicine(ctx, pacttest.ExistingMedicineID)
		if err != nil {
			return fmt.Errorf("get medicine: %w", err)
		}
		if medicine.ID != pacttest.ExistingMedicineID || medicine.ListingStatus != "Approved" {
			return fmt.Errorf("unexpected medicine %+v", medicine)
		}

		if _, err := client.GetMedicine(ctx, pacttest.MissingMedicineID); err == nil {
			return fmt.Errorf("expected 404 for medicine %s", pacttest.MissingMedicineID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.status)
		}

		order, err := client.PlaceOrder(ctx, pacttest.ExampleOrderRequest())
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if order.ID == "" || order.Status != "Pending" {
			return fmt.Errorf("unexpected order %+v", order)
		}
		return nil
	})
	require.NoError(t, err)
}

type portalClient struct {
	baseURL    string
	httpClient *http.Client
}

func newPortalClient(config pactconsumer.MockServerConfig) *portalClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &portalClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *portalClient) GetMedicine(ctx context.Context, id string) (*medicinePayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/medicines/"+id, nil)
	if err != nil {
		return nil, err
	}
	var payload medicinePayload
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *portalClient) PlaceOrder(ctx context.Context, order map[string]any) (*orderPayload, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var payload orderPayload
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *portalClient) do(req *http.Request, out any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{status: status, title: problem.Title, detail: problem.Detail}
}
