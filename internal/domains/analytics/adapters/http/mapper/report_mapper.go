package mapper

import (
	"sort"
	"time"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/analytics/domain"
)

// Bucket is one labelled count of a breakdown chart.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Product is a best-seller entry.
type Product struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Report is the dashboard payload.
type Report struct {
	TotalMedicines    int       `json:"totalMedicines"`
	TotalOrders       int       `json:"totalOrders"`
	TotalRevenue      float64   `json:"totalRevenue"`
	StockStatus       []Bucket  `json:"stockStatus"`
	SupplyChainStatus []Bucket  `json:"supplyChainStatus"`
	OrderStatus       []Bucket  `json:"orderStatus"`
	TopProducts       []Product `json:"topProducts"`
	GeneratedAt       time.Time `json:"generatedAt"`
}

func FromReport(r *domain.Report) Report {
	if r == nil {
		return Report{}
	}
	out := Report{
		TotalMedicines:    r.TotalMedicines,
		TotalOrders:       r.TotalOrders,
		TotalRevenue:      r.Revenue,
		StockStatus:       buckets(r.ByStockStatus),
		SupplyChainStatus: buckets(r.BySupplyChain),
		OrderStatus:       buckets(r.ByOrderStatus),
		TopProducts:       make([]Product, 0, len(r.TopProducts)),
		GeneratedAt:       r.GeneratedAt,
	}
	for _, p := range r.TopProducts {
		out.TopProducts = append(out.TopProducts, Product{Name: p.Name, Quantity: p.Quantity})
	}
	return out
}

func buckets[K ~string](counts map[K]int) []Bucket {
	out := make([]Bucket, 0, len(counts))
	for name, value := range counts {
		out = append(out, Bucket{Name: string(name), Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
