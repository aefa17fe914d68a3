package catalog

import "github.com/hoangtrn/fest-go/internal/domain"

// SeedItems returns the default catalog used to bootstrap a fresh install.
// Prices are whole VND thousands per unit.
func SeedItems() []domain.CatalogItem {
	return []domain.CatalogItem{
		{
			Name:        "Tiệc Cưới Trọn Gói",
			Description: "Full wedding party package with decoration, menu and staff",
			Price:       25000,
			Category:    "wedding",
			Rating:      4.8,
			ReviewCount: 132,
			Features:    []string{"decoration", "full menu", "mc", "sound system"},
			Location:    "Hồ Chí Minh",
			Capacity:    "300 guests",
			Duration:    "6 hours",
		},
		{
			Name:        "Tiệc Sinh Nhật Trẻ Em",
			Description: "Kids birthday party with games, cake and a host",
			Price:       3500,
			Category:    "birthday",
			Rating:      4.6,
			ReviewCount: 89,
			Features:    []string{"balloon decor", "cake", "games", "host"},
			Location:    "Hồ Chí Minh",
			Capacity:    "50 guests",
			Duration:    "3 hours",
		},
		{
			Name:        "Gala Dinner Doanh Nghiệp",
			Description: "Corporate gala dinner with stage, lighting and catering",
			Price:       18000,
			Category:    "corporate",
			Rating:      4.7,
			ReviewCount: 54,
			Features:    []string{"stage", "lighting", "catering", "reception desk"},
			Location:    "Hà Nội",
			Capacity:    "500 guests",
			Duration:    "5 hours",
		},
		{
			Name:        "Tiệc Tất Niên",
			Description: "Year-end party package for companies and teams",
			Price:       12000,
			Category:    "corporate",
			Rating:      4.5,
			ReviewCount: 76,
			Features:    []string{"buffet", "lucky draw", "mc"},
			Location:    "Hà Nội",
			Capacity:    "200 guests",
			Duration:    "4 hours",
		},
		{
			Name:        "Tiệc Thôi Nôi",
			Description: "First birthday ceremony with traditional setup",
			Price:       4200,
			Category:    "birthday",
			Rating:      4.9,
			ReviewCount: 41,
			Features:    []string{"traditional decor", "photography", "cake"},
			Location:    "Đà Nẵng",
			Capacity:    "80 guests",
			Duration:    "3 hours",
		},
		{
			Name:        "Buffet Ngoài Trời",
			Description: "Outdoor buffet catering with live cooking stations",
			Price:       8500,
			Category:    "catering",
			Rating:      4.4,
			ReviewCount: 63,
			Features:    []string{"live cooking", "bbq", "dessert bar"},
			Location:    "Hồ Chí Minh",
			Capacity:    "150 guests",
			Duration:    "4 hours",
		},
		{
			Name:        "Set Menu Gia Đình",
			Description: "Family set menu delivered and served at home",
			Price:       2800,
			Category:    "catering",
			Rating:      4.3,
			ReviewCount: 118,
			Features:    []string{"home service", "set menu", "staff"},
			Location:    "Hồ Chí Minh",
			Capacity:    "20 guests",
			Duration:    "2 hours",
		},
		{
			Name:        "Trang Trí Sự Kiện",
			Description: "Standalone event decoration: flowers, backdrop and lighting",
			Price:       5000,
			Category:    "decoration",
			Rating:      4.6,
			ReviewCount: 35,
			Features:    []string{"flowers", "backdrop", "lighting"},
			Location:    "Đà Nẵng",
			Capacity:    "any",
			Duration:    "per event",
		},
		{
			Name:        "Ban Nhạc Acoustic",
			Description: "Live acoustic band for ceremonies and dinners",
			Price:       6000,
			Category:    "entertainment",
			Rating:      4.7,
			ReviewCount: 28,
			Features:    []string{"live band", "sound system"},
			Location:    "Hà Nội",
			Capacity:    "any",
			Duration:    "2 hours",
		},
		{
			Name:        "Quay Phim Chụp Ảnh",
			Description: "Photo and video coverage with same-week delivery",
			Price:       4500,
			Category:    "media",
			Rating:      4.8,
			ReviewCount: 97,
			Features:    []string{"photographer", "videographer", "editing"},
			Location:    "Hồ Chí Minh",
			Capacity:    "any",
			Duration:    "full event",
		},
	}
}
