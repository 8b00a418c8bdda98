package domain

import (
	"math"
	"sort"
	"time"

	inventorydomain "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	ordersdomain "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
)

// TopProductsLimit caps the best-seller list.
const TopProductsLimit = 5

// ProductSales is the ordered quantity of one product name across all orders.
type ProductSales struct {
	Name     string
	Quantity int
}

// Report is the admin dashboard snapshot. Revenue only counts delivered orders.
type Report struct {
	TotalMedicines int
	TotalOrders    int
	Revenue        float64
	BySupplyChain  map[inventorydomain.SupplyChainStatus]int
	ByStockStatus  map[inventorydomain.StockStatus]int
	ByOrderStatus  map[ordersdomain.Status]int
	TopProducts    []ProductSales
	GeneratedAt    time.Time
}

// Build aggregates the catalog and order book into a report.
func Build(medicines []*inventorydomain.Medicine, orders []*ordersdomain.Order, now time.Time) Report {
	r := Report{
		BySupplyChain: map[inventorydomain.SupplyChainStatus]int{},
		ByStockStatus: map[inventorydomain.StockStatus]int{},
		ByOrderStatus: map[ordersdomain.Status]int{},
		GeneratedAt:   now.UTC(),
	}
	for _, m := range medicines {
		if m == nil {
			continue
		}
		r.TotalMedicines++
		r.ByStockStatus[m.StockStatus()]++
		r.BySupplyChain[m.SupplyChainStatus]++
	}
	sold := map[string]int{}
	for _, o := range orders {
		if o == nil {
			continue
		}
		r.TotalOrders++
		r.ByOrderStatus[o.Status]++
		if o.Status == ordersdomain.StatusDelivered {
			r.Revenue += o.Total
		}
		for _, item := range o.Items {
			sold[item.Name] += item.Quantity
		}
	}
	r.Revenue = math.Round(r.Revenue*100) / 100
	r.TopProducts = topProducts(sold, TopProductsLimit)
	return r
}

func topProducts(sold map[string]int, limit int) []ProductSales {
	list := make([]ProductSales, 0, len(sold))
	for name, qty := range sold {
		list = append(list, ProductSales{Name: name, Quantity: qty})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Quantity != list[j].Quantity {
			return list[i].Quantity > list[j].Quantity
		}
		return list[i].Name < list[j].Name
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}
